package sundhed

import (
	"net/url"
	"strconv"
)

// SearchParams are the query parameters of the findbehandlerv2 search
// endpoint. The zero values of the filters are what the guide page sends
// when no filter is selected.
type SearchParams struct {
	// 1 based, defaults to 1
	Page int
	// defaults to 100
	Pagesize int
	// 0 means every region
	RegionId       int
	MunicipalityId string
	// 0 means any
	Sex int
	// 0 means any
	AgeGroup int
	// the provider type, ex. "Tandlæge"
	Informationskategori      string
	InformationsUnderkategori string

	DisabilityFriendlyAccess    bool
	GodAdgang                   bool
	EMailConsultation           bool
	EMailAppointmentReservation bool
	EMailPrescriptionRenewal    bool
	TakesNewPatients            bool
	TreatmentAtHome             bool
	WaitTime                    bool

	// free text search on the provider name
	Name string

	// nil is sent as the literal "null"
	Latitude  *float64
	Longitude *float64
	Address   *string
}

// DefaultSearchParams returns the first page of 100 results for a
// municipality and category with every other filter left unset.
func DefaultSearchParams(municipalityId, category string) SearchParams {
	return SearchParams{
		Page:                 1,
		Pagesize:             100,
		MunicipalityId:       municipalityId,
		Informationskategori: category,
	}
}

func formatNullableFloat(f *float64) string {
	if f == nil {
		return "null"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func formatNullableString(s *string) string {
	if s == nil {
		return "null"
	}
	return *s
}

// Values encodes the parameters the way the guide page's scripts do:
// numbers in decimal, booleans as "true"/"false" and missing values as "null".
func (p SearchParams) Values() url.Values {
	return url.Values{
		"Page":                        {strconv.Itoa(p.Page)},
		"Pagesize":                    {strconv.Itoa(p.Pagesize)},
		"RegionId":                    {strconv.Itoa(p.RegionId)},
		"MunicipalityId":              {p.MunicipalityId},
		"Sex":                         {strconv.Itoa(p.Sex)},
		"AgeGroup":                    {strconv.Itoa(p.AgeGroup)},
		"Informationskategori":        {p.Informationskategori},
		"InformationsUnderkategori":   {p.InformationsUnderkategori},
		"DisabilityFriendlyAccess":    {strconv.FormatBool(p.DisabilityFriendlyAccess)},
		"GodAdgang":                   {strconv.FormatBool(p.GodAdgang)},
		"EMailConsultation":           {strconv.FormatBool(p.EMailConsultation)},
		"EMailAppointmentReservation": {strconv.FormatBool(p.EMailAppointmentReservation)},
		"EMailPrescriptionRenewal":    {strconv.FormatBool(p.EMailPrescriptionRenewal)},
		"TakesNewPatients":            {strconv.FormatBool(p.TakesNewPatients)},
		"TreatmentAtHome":             {strconv.FormatBool(p.TreatmentAtHome)},
		"WaitTime":                    {strconv.FormatBool(p.WaitTime)},
		"Name":                        {p.Name},
		"Latitude":                    {formatNullableFloat(p.Latitude)},
		"Longitude":                   {formatNullableFloat(p.Longitude)},
		"Address":                     {formatNullableString(p.Address)},
	}
}
