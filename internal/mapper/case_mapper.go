package mapper

import (
	"encoding/json"

	"frontline-citizen-be/internal/entity"
	"frontline-citizen-be/internal/model"

	"gorm.io/datatypes"
)

type CaseMapper struct{}

func NewCaseMapper() *CaseMapper {
	return &CaseMapper{}
}

func (m *CaseMapper) ToEntity(c *model.Case) *entity.CaseRecord {
	if c == nil {
		return nil
	}

	rec := &entity.CaseRecord{
		CaseId:        c.CaseId,
		CreatedAt:     c.CreatedAt,
		CaseType:      entity.CaseType(c.CaseType),
		Urgency:       entity.Urgency(c.Urgency),
		Lite:          c.Lite,
		Confirmation:  c.Confirmation,
		UserMessage:   c.UserMessage,
		BatteryPct:    c.BatteryPct,
		BandwidthKbps: c.BandwidthKbps,
		CitizenPhone:  c.CitizenPhone,
		Lang:          c.Lang,
	}

	if len(c.Target) > 0 {
		var f entity.Facility
		if err := json.Unmarshal(c.Target, &f); err == nil {
			rec.Target = &f
		}
	}
	if len(c.Booking) > 0 {
		var b entity.Booking
		if err := json.Unmarshal(c.Booking, &b); err == nil {
			rec.Booking = &b
		}
	}
	if len(c.Location) > 0 {
		var p entity.GeoPoint
		if err := json.Unmarshal(c.Location, &p); err == nil {
			rec.Location = &p
		}
	}
	return rec
}

func (m *CaseMapper) ToModel(rec *entity.CaseRecord) *model.Case {
	if rec == nil {
		return nil
	}

	return &model.Case{
		CaseId:        rec.CaseId,
		CaseType:      string(rec.CaseType),
		Urgency:       string(rec.Urgency),
		Lite:          rec.Lite,
		Target:        toJSON(rec.Target),
		Booking:       toJSON(rec.Booking),
		Confirmation:  rec.Confirmation,
		UserMessage:   rec.UserMessage,
		Location:      toJSON(rec.Location),
		BatteryPct:    rec.BatteryPct,
		BandwidthKbps: rec.BandwidthKbps,
		CitizenPhone:  rec.CitizenPhone,
		Lang:          rec.Lang,
		CreatedAt:     rec.CreatedAt,
	}
}

func (m *CaseMapper) ToEntities(cases []*model.Case) []*entity.CaseRecord {
	records := make([]*entity.CaseRecord, len(cases))
	for i, c := range cases {
		records[i] = m.ToEntity(c)
	}
	return records
}

// toJSON marshals a pointer payload to jsonb, nil stays NULL.
func toJSON(v interface{}) datatypes.JSON {
	switch t := v.(type) {
	case *entity.Facility:
		if t == nil {
			return nil
		}
	case *entity.Booking:
		if t == nil {
			return nil
		}
	case *entity.GeoPoint:
		if t == nil {
			return nil
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
