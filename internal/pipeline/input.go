package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/raeesul-erabiz/invoice-extractor/internal/domain"
)

// Input is the envelope external drivers may submit: a record plus optional
// supplement material for rules that need the raw text or an alternate
// line-item rendering. A bare record (no "record" key) is also accepted.
type Input struct {
	Record          json.RawMessage             `json:"record"`
	RawText         string                      `json:"raw_text"`
	SupplementItems []domain.SupplementLineItem `json:"supplement_items"`
}

// DecodeInput parses either envelope form into a raw record and supplement.
func DecodeInput(b []byte) (domain.RawInvoice, domain.Supplement, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return domain.RawInvoice{}, domain.Supplement{}, domain.ErrEmptyRecord
	}

	var env Input
	if err := json.Unmarshal(b, &env); err == nil && len(env.Record) > 0 {
		var raw domain.RawInvoice
		if err := json.Unmarshal(env.Record, &raw); err != nil {
			return domain.RawInvoice{}, domain.Supplement{}, fmt.Errorf("%w: %v", domain.ErrInvalidSourceData, err)
		}
		return raw, domain.Supplement{RawText: env.RawText, LineItems: env.SupplementItems}, nil
	}

	var raw domain.RawInvoice
	if err := json.Unmarshal(b, &raw); err != nil {
		return domain.RawInvoice{}, domain.Supplement{}, fmt.Errorf("%w: %v", domain.ErrInvalidSourceData, err)
	}
	return raw, domain.Supplement{}, nil
}
