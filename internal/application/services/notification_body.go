package services

import (
	"fmt"
	"strings"

	"github.com/careroute/referral-agent/internal/domain/entities"
)

const referralEmailTemplate = `<html>
<body style="font-family: Arial, sans-serif; color: #222;">
<h2 style="color: #1a5276;">Medical Referral Notification</h2>
<p>A new referral has been confirmed and requires scheduling.</p>

<h3>Patient</h3>
<ul>
<li><b>Name:</b> {{patient_name}}</li>
<li><b>Date of Birth:</b> {{date_of_birth}}</li>
<li><b>Chief Complaint:</b> {{chief_complaint}}</li>
</ul>

<h3>Referred To</h3>
<ul>
<li><b>Specialist:</b> {{specialist_name}} ({{specialty}})</li>
<li><b>Facility:</b> {{specialist_affiliation}}</li>
<li><b>Contact:</b> {{specialist_contact}}</li>
</ul>

<h3>Insurance</h3>
<ul>
<li><b>Plan:</b> {{insurance_plan}}</li>
<li><b>Status:</b> {{coverage_status}}</li>
<li><b>Estimated Copay:</b> {{copay}}</li>
</ul>
{{#if predictive_alert}}
<div style="background: #fdecea; border-left: 4px solid #c0392b; padding: 8px 12px;">
<b>Clinical Alert:</b> {{predictive_alert}}
</div>
{{/if}}
<h3>Clinical Notes</h3>
<p>{{clinical_narrative}}</p>

<h3>Billing Codes</h3>
<p><b>Procedure (CPT):</b> {{procedure_codes}}<br/>
<b>Diagnosis (ICD-10):</b> {{diagnosis_codes}}</p>
{{#if document_reference}}
<p>The completed referral form is attached as <i>{{document_reference}}</i>.</p>
{{/if}}
<p style="color: #888; font-size: 12px;">Reference: {{recommendation_id}}</p>
</body>
</html>`

// renderNotificationBody fills the referral email template from a
// recommendation. Placeholders are plain string substitution; conditional
// sections are dropped when their field is empty.
func renderNotificationBody(rec entities.ReferralRecommendation) string {
	body := referralEmailTemplate
	body = renderConditional(body, "predictive_alert", rec.PredictiveAlert != "")
	body = renderConditional(body, "document_reference", rec.DocumentReference != "")

	replacements := map[string]string{
		"{{patient_name}}":           rec.PatientName,
		"{{date_of_birth}}":          orPlaceholder(rec.DateOfBirth, "Not provided"),
		"{{chief_complaint}}":        orPlaceholder(rec.ChiefComplaint, "Not documented"),
		"{{specialist_name}}":        rec.Specialist.Name,
		"{{specialty}}":              string(rec.Specialty),
		"{{specialist_affiliation}}": rec.Specialist.Affiliation,
		"{{specialist_contact}}":     rec.Specialist.Contact,
		"{{insurance_plan}}":         rec.Insurance.PlanID,
		"{{coverage_status}}":        string(rec.Insurance.Status),
		"{{copay}}":                  rec.Insurance.Copay,
		"{{predictive_alert}}":       rec.PredictiveAlert,
		"{{clinical_narrative}}":     rec.ClinicalNarrative,
		"{{procedure_codes}}":        formatCodeList(rec.ProcedureCodes),
		"{{diagnosis_codes}}":        formatCodeList(rec.DiagnosisCodes),
		"{{document_reference}}":     rec.DocumentReference,
		"{{recommendation_id}}":      rec.ID,
	}
	for placeholder, value := range replacements {
		body = strings.ReplaceAll(body, placeholder, value)
	}
	return body
}

// renderNotificationSubject builds the email subject line for a referral.
func renderNotificationSubject(rec entities.ReferralRecommendation) string {
	subject := fmt.Sprintf("Referral: %s - %s Consultation", rec.PatientName, titleSpecialty(rec.Specialty))
	if rec.PredictiveAlert != "" {
		subject = "Urgent " + subject
	}
	return subject
}

func titleSpecialty(s entities.Specialty) string {
	name := string(s)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func renderConditional(template, name string, keep bool) string {
	open := "{{#if " + name + "}}"
	if keep {
		template = strings.Replace(template, open, "", 1)
		return strings.Replace(template, "{{/if}}", "", 1)
	}
	start := strings.Index(template, open)
	if start < 0 {
		return template
	}
	end := strings.Index(template[start:], "{{/if}}")
	if end < 0 {
		return template
	}
	return template[:start] + template[start+end+len("{{/if}}"):]
}

func orPlaceholder(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func formatCodeList(codes []entities.CodeEntry) string {
	if len(codes) == 0 {
		return "None on file"
	}
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, fmt.Sprintf("%s (%s)", c.Code, c.Description))
	}
	return strings.Join(parts, "; ")
}
