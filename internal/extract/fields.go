package extract

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ZenithArcX/Synapx/internal/model"
)

// fieldPattern maps one canonical field name to the label phrasings that
// carriers use for it. Each pattern captures exactly one group: the value.
type fieldPattern struct {
	name    model.FieldName
	pattern *regexp.Regexp
}

// The table is ordered; extraction walks it top to bottom. Patterns are
// case-insensitive and allow matches to span lines where the character
// classes permit.
var fieldPatterns = []fieldPattern{
	{model.FieldPolicyNumber, regexp.MustCompile(`(?is)(?:POLICY\s*(?:NUMBER|#)|POLICY_NUMBER)[:\s]*([0-9A-Za-z-]+)`)},
	{model.FieldPolicyholderName, regexp.MustCompile(`(?is)(?:NAME\s*OF\s*INSURED|POLICYHOLDER\s*NAME)[:\s]*([^,\n]+)`)},
	{model.FieldEffectiveDate, regexp.MustCompile(`(?is)(?:EFFECTIVE\s*DATE|COVERAGE\s*PERIOD)[:\s]*([0-9]{2}[/-][0-9]{2}[/-][0-9]{4})`)},
	{model.FieldIncidentDate, regexp.MustCompile(`(?is)(?:DATE\s*OF\s*(?:LOSS|ACCIDENT)|DATE)[:\s]*([0-9]{2}[/-][0-9]{2}[/-][0-9]{4})`)},
	{model.FieldIncidentTime, regexp.MustCompile(`(?is)(?:TIME)[:\s]*([0-9]{1,2}:[0-9]{2}\s*(?:AM|PM)?)`)},
	{model.FieldIncidentLocation, regexp.MustCompile(`(?is)(?:LOCATION\s*OF\s*(?:LOSS|ACCIDENT)|STREET|ADDRESS|LOC)[:\s]*([^;\n]+)`)},
	{model.FieldCityStateZip, regexp.MustCompile(`(?is)(?:CITY|CITY,\s*STATE)[:\s]*([^,\n]+(?:,[^,\n]+)*)`)},
	{model.FieldClaimantName, regexp.MustCompile(`(?is)(?:NAME\s*OF\s*(?:CLAIMANT|CONTACT)|CONTACT\s*NAME)[:\s]*([^,\n]+)`)},
	{model.FieldThirdParty, regexp.MustCompile(`(?is)(?:OTHER\s*(?:VEHICLE|PARTY)|THIRD\s*PARTY)[:\s]*([^\n]+)`)},
	{model.FieldContactPhone, regexp.MustCompile(`(?is)(?:(?:PRIMARY\s*|SECONDARY\s*)?PHONE)[:\s]*([0-9]{3}[.-]?[0-9]{3}[.-]?[0-9]{4})`)},
	{model.FieldContactEmail, regexp.MustCompile(`(?is)(?:E-MAIL|EMAIL)[:\s]*([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)},
	{model.FieldAssetType, regexp.MustCompile(`(?is)(?:INSURED\s*VEHICLE|ASSET\s*TYPE)[:\s]*([^\n]+)`)},
	{model.FieldVehicleVIN, regexp.MustCompile(`(?is)(?:V\.I\.N\.|VIN)[:\s]*([A-HJ-NPR-Z0-9]{17})`)},
	{model.FieldVehiclePlate, regexp.MustCompile(`(?is)(?:PLATE\s*NUMBER)[:\s]*([A-Za-z0-9]{2,8})`)},
	{model.FieldClaimType, regexp.MustCompile(`(?is)(?:CLAIM\s*TYPE|LINE\s*OF\s*BUSINESS)[:\s]*([^\n]+)`)},
	{model.FieldEstimatedDamage, regexp.MustCompile(`(?is)(?:ESTIMATE\s*(?:AMOUNT|DAMAGE)|ESTIMATED\s*(?:DAMAGE|LOSS))[:\s]*\$?([0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})?)`)},
	{model.FieldDescription, regexp.MustCompile(`(?is)(?:DESCRIBE\s*(?:LOSS|ACCIDENT|DAMAGE)|DESCRIPTION)[:\s]*([^;]+(?:[;][^;]+)?)`)},
}

var (
	streetRe       = regexp.MustCompile(`(?i)(\w+\s+street)`)
	intersectionRe = regexp.MustCompile(`(?i)intersection\s+of\s+([^.]+)`)
	damageCleaner  = strings.NewReplacer(",", "", "$", "")
	titleCaser     = cases.Title(language.AmericanEnglish)
)

// FieldNames returns every field name in the schema, in table order
func FieldNames() []model.FieldName {
	names := make([]model.FieldName, len(fieldPatterns))
	for i, fp := range fieldPatterns {
		names[i] = fp.name
	}
	return names
}

// Extractor extracts structured fields from FNOL document text
type Extractor struct{}

// NewExtractor creates a new field extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract applies the pattern table to raw document text. It is a pure
// function of its input and never fails: fields that do not match are
// simply absent from the result.
func (e *Extractor) Extract(text string) model.ExtractedFields {
	fields := model.NewExtractedFields()

	for _, fp := range fieldPatterns {
		m := fp.pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		fields.Set(fp.name, strings.TrimSpace(m[1]))
	}

	// A label that captured only whitespace is as good as no location;
	// the fallback applies in both cases.
	if loc, ok := fields.Get(model.FieldIncidentLocation); !ok || loc == "" {
		if desc, ok := fields.Get(model.FieldDescription); ok {
			if loc := locationFromDescription(desc); loc != "" {
				fields.Set(model.FieldIncidentLocation, loc)
			}
		}
	}

	if raw, ok := fields.Get(model.FieldEstimatedDamage); ok {
		fields.DamageValue = NormalizeDamage(raw)
	}

	return fields
}

// locationFromDescription applies the secondary location heuristics, in
// precedence order. Only the first matching heuristic applies.
func locationFromDescription(desc string) string {
	lower := strings.ToLower(desc)

	switch {
	case strings.Contains(lower, "driveway"):
		return "Driveway"
	case strings.Contains(lower, "street"):
		if m := streetRe.FindStringSubmatch(lower); m != nil {
			return titleCaser.String(m[1])
		}
	case strings.Contains(lower, "parking"):
		return "Parking lot/garage"
	case strings.Contains(lower, "intersection"):
		if m := intersectionRe.FindStringSubmatch(lower); m != nil {
			return titleCaser.String(m[1])
		}
	}

	return ""
}

// NormalizeDamage converts a raw damage string to a numeric amount,
// stripping the currency symbol and thousands separators. A malformed
// amount defaults to 0 so the routing rules can still run.
func NormalizeDamage(raw string) float64 {
	v, err := strconv.ParseFloat(damageCleaner.Replace(raw), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
