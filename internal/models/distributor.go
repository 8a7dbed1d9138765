package models

// Distributor is one row of the static distributors table. Every column
// except id, arn and arn_holder_name is nullable; date columns are kept
// as opaque text and validated client-side.
type Distributor struct {
	ID               int64   `json:"id" db:"id"`
	Arn              string  `json:"arn" db:"arn"`
	ArnHolderName    string  `json:"arn_holder_name" db:"arn_holder_name"`
	City             *string `json:"city" db:"city"`
	Owner            *string `json:"owner" db:"owner"`
	Stage            *string `json:"stage" db:"stage"`
	Aum              *int64  `json:"aum" db:"aum"`
	DateAdded        *string `json:"date_added" db:"date_added"`
	Priority         *string `json:"priority" db:"priority"`
	LinkedinURL      *string `json:"linkedin_url" db:"linkedin_url"`
	NotesLink        *string `json:"notes_link" db:"notes_link"`
	Notes            *string `json:"notes" db:"notes"`
	Address          *string `json:"address" db:"address"`
	Pin              *string `json:"pin" db:"pin"`
	Email            *string `json:"email" db:"email"`
	TelephoneR       *string `json:"telephone_r" db:"telephone_r"`
	TelephoneO       *string `json:"telephone_o" db:"telephone_o"`
	ArnValidFrom     *string `json:"arn_valid_from" db:"arn_valid_from"`
	ArnValidTill     *string `json:"arn_valid_till" db:"arn_valid_till"`
	KydCompliant     *string `json:"kyd_compliant" db:"kyd_compliant"`
	Euin             *string `json:"euin" db:"euin"`
	LeadSource       *string `json:"lead_source" db:"lead_source"`
	PlatformUsed     *string `json:"platform_used" db:"platform_used"`
	FollowUpDate     *string `json:"follow_up_date" db:"follow_up_date"`
	SecondaryContact *string `json:"secondary_contact" db:"secondary_contact"`
	SecondaryName    *string `json:"secondary_name" db:"secondary_name"`
	FirstCallDate    *string `json:"first_call_date" db:"first_call_date"`
}

// FlatRecord is the merged client-facing view of a distributor: all
// static columns plus one entry per stored dynamic value.
type FlatRecord map[string]interface{}

// StaticColumns lists every writable column of the distributors table, in
// the order they appear in the schema. The surrogate id is not included.
var StaticColumns = []string{
	"arn", "arn_holder_name", "city", "owner", "stage", "aum",
	"date_added", "priority", "linkedin_url", "notes_link", "notes",
	"address", "pin", "email", "telephone_r", "telephone_o",
	"arn_valid_from", "arn_valid_till", "kyd_compliant", "euin",
	"lead_source", "platform_used", "follow_up_date",
	"secondary_contact", "secondary_name", "first_call_date",
}

var staticColumnSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(StaticColumns))
	for _, col := range StaticColumns {
		set[col] = struct{}{}
	}
	return set
}()

// IsStaticColumn reports whether key names a writable static column.
func IsStaticColumn(key string) bool {
	_, ok := staticColumnSet[key]
	return ok
}

// Flat returns the distributor's static columns as a flat record. Nullable
// columns that are unset appear as nil, matching what a bare row scan of
// the table would serialize.
func (d *Distributor) Flat() FlatRecord {
	record := FlatRecord{
		"id":              d.ID,
		"arn":             d.Arn,
		"arn_holder_name": d.ArnHolderName,
	}
	optional := map[string]*string{
		"city":              d.City,
		"owner":             d.Owner,
		"stage":             d.Stage,
		"date_added":        d.DateAdded,
		"priority":          d.Priority,
		"linkedin_url":      d.LinkedinURL,
		"notes_link":        d.NotesLink,
		"notes":             d.Notes,
		"address":           d.Address,
		"pin":               d.Pin,
		"email":             d.Email,
		"telephone_r":       d.TelephoneR,
		"telephone_o":       d.TelephoneO,
		"arn_valid_from":    d.ArnValidFrom,
		"arn_valid_till":    d.ArnValidTill,
		"kyd_compliant":     d.KydCompliant,
		"euin":              d.Euin,
		"lead_source":       d.LeadSource,
		"platform_used":     d.PlatformUsed,
		"follow_up_date":    d.FollowUpDate,
		"secondary_contact": d.SecondaryContact,
		"secondary_name":    d.SecondaryName,
		"first_call_date":   d.FirstCallDate,
	}
	for col, val := range optional {
		if val != nil {
			record[col] = *val
		} else {
			record[col] = nil
		}
	}
	if d.Aum != nil {
		record["aum"] = *d.Aum
	} else {
		record["aum"] = nil
	}
	return record
}
