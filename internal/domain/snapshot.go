package domain

import (
	"encoding/json"
	"time"
)

// TimeLayout is the ISO-8601 form every stored timestamp uses.
const TimeLayout = "2006-01-02T15:04:05.000Z"

func Timestamp(t time.Time) string { return t.UTC().Format(TimeLayout) }

// Snapshot is the whole document kept by the store. The trailing collections
// belong to the financial side of the platform and are carried verbatim.
type Snapshot struct {
	Products          []Product         `json:"products"`
	Users             []User            `json:"users"`
	Checkouts         []CheckoutConfig  `json:"checkouts"`
	ProductSettings   []ProductSettings `json:"productSettings"`
	Cobrancas         []json.RawMessage `json:"cobrancas"`
	Saldos            []json.RawMessage `json:"saldos"`
	WithdrawRequests  []json.RawMessage `json:"withdrawRequests"`
	Sales             []json.RawMessage `json:"sales"`
	FinancialSettings []json.RawMessage `json:"financialSettings"`
	Settings          []json.RawMessage `json:"settings"`
}

type snapshotJSON Snapshot

// MarshalJSON always writes every collection as an array, never null.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	out := snapshotJSON(s.normalized())
	return json.Marshal(out)
}

func (s Snapshot) normalized() Snapshot {
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.Users == nil {
		s.Users = []User{}
	}
	if s.Checkouts == nil {
		s.Checkouts = []CheckoutConfig{}
	}
	if s.ProductSettings == nil {
		s.ProductSettings = []ProductSettings{}
	}
	raw := []*[]json.RawMessage{&s.Cobrancas, &s.Saldos, &s.WithdrawRequests, &s.Sales, &s.FinancialSettings, &s.Settings}
	for _, r := range raw {
		if *r == nil {
			*r = []json.RawMessage{}
		}
	}
	return s
}

// Clone returns a copy that shares no mutable state with s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{
		Cobrancas:         cloneRaw(s.Cobrancas),
		Saldos:            cloneRaw(s.Saldos),
		WithdrawRequests:  cloneRaw(s.WithdrawRequests),
		Sales:             cloneRaw(s.Sales),
		FinancialSettings: cloneRaw(s.FinancialSettings),
		Settings:          cloneRaw(s.Settings),
	}
	out.Products = make([]Product, len(s.Products))
	for i, p := range s.Products {
		out.Products[i] = p.Clone()
	}
	out.Users = make([]User, len(s.Users))
	for i, u := range s.Users {
		out.Users[i] = u.Clone()
	}
	out.Checkouts = make([]CheckoutConfig, len(s.Checkouts))
	for i, c := range s.Checkouts {
		out.Checkouts[i] = c.Clone()
	}
	out.ProductSettings = make([]ProductSettings, len(s.ProductSettings))
	for i, ps := range s.ProductSettings {
		out.ProductSettings[i] = ps.Clone()
	}
	return out
}

func cloneRaw(in []json.RawMessage) []json.RawMessage {
	if in == nil {
		return nil
	}
	return append([]json.RawMessage(nil), in...)
}

type Counts struct {
	Products        int `json:"products"`
	Users           int `json:"users"`
	Checkouts       int `json:"checkouts"`
	ProductSettings int `json:"productSettings"`
}

func (s Snapshot) Counts() Counts {
	return Counts{
		Products:        len(s.Products),
		Users:           len(s.Users),
		Checkouts:       len(s.Checkouts),
		ProductSettings: len(s.ProductSettings),
	}
}
