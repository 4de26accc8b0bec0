package model

import "strings"

// FieldName identifies a recognized FNOL document field
type FieldName string

const (
	FieldPolicyNumber     FieldName = "policy_number"
	FieldPolicyholderName FieldName = "policyholder_name"
	FieldEffectiveDate    FieldName = "effective_date"
	FieldIncidentDate     FieldName = "incident_date"
	FieldIncidentTime     FieldName = "incident_time"
	FieldIncidentLocation FieldName = "incident_location"
	FieldCityStateZip     FieldName = "city_state_zip"
	FieldClaimantName     FieldName = "claimant_name"
	FieldThirdParty       FieldName = "third_party"
	FieldContactPhone     FieldName = "contact_phone"
	FieldContactEmail     FieldName = "contact_email"
	FieldAssetType        FieldName = "asset_type"
	FieldVehicleVIN       FieldName = "vehicle_vin"
	FieldVehiclePlate     FieldName = "vehicle_plate"
	FieldClaimType        FieldName = "claim_type"
	FieldEstimatedDamage  FieldName = "estimated_damage"
	FieldDescription      FieldName = "accident_description"
)

// MandatoryFields are the fields that must be present and non-placeholder
// for a claim to auto-route past manual review. Order is fixed and is the
// order missing fields are reported in.
var MandatoryFields = []FieldName{
	FieldPolicyNumber,
	FieldPolicyholderName,
	FieldIncidentDate,
	FieldIncidentLocation,
	FieldClaimType,
	FieldEstimatedDamage,
}

// MandatoryFieldNames returns the mandatory field names as plain strings
func MandatoryFieldNames() []string {
	names := make([]string, len(MandatoryFields))
	for i, f := range MandatoryFields {
		names[i] = string(f)
	}
	return names
}

// ExtractedFields holds the values pulled out of a single document.
// Absence of a field is distinct from an empty value: a field that never
// matched is not stored at all.
type ExtractedFields struct {
	values map[FieldName]string

	// DamageValue is the numeric amount derived from the raw
	// estimated_damage string. Zero when absent or unparsable.
	DamageValue float64
}

// NewExtractedFields creates an empty field set
func NewExtractedFields() ExtractedFields {
	return ExtractedFields{values: make(map[FieldName]string)}
}

// Set stores a value for a field
func (f ExtractedFields) Set(name FieldName, value string) {
	f.values[name] = value
}

// Get returns the value for a field and whether it was extracted
func (f ExtractedFields) Get(name FieldName) (string, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Has reports whether a field was extracted
func (f ExtractedFields) Has(name FieldName) bool {
	_, ok := f.values[name]
	return ok
}

// Len returns the number of extracted fields
func (f ExtractedFields) Len() int {
	return len(f.values)
}

// ClaimType returns the lower-cased claim type, or "" if absent
func (f ExtractedFields) ClaimType() string {
	v, ok := f.values[FieldClaimType]
	if !ok {
		return ""
	}
	return strings.ToLower(v)
}

// Visible returns the externally visible copy of the field map: present
// values only, keyed by field name. The derived DamageValue is internal
// and never appears here.
func (f ExtractedFields) Visible() map[string]string {
	out := make(map[string]string, len(f.values))
	for name, value := range f.values {
		out[string(name)] = value
	}
	return out
}
