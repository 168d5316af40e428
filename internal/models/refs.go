package models

import (
	"encoding/json"
	"fmt"
)

// The backend returns foreign-key fields either as a bare id string or
// already expanded into the referenced object, depending on the endpoint.
// CategoryRef and VendorRef keep both shapes behind an explicit narrowing
// step instead of dynamic field access.

type CategoryRef struct {
	id       string
	category *Category
}

func CategoryID(id string) CategoryRef {
	return CategoryRef{id: id}
}

func PopulatedCategory(c *Category) CategoryRef {
	if c == nil {
		return CategoryRef{}
	}
	return CategoryRef{id: c.ID, category: c}
}

// ID returns the referenced category id regardless of shape.
func (r CategoryRef) ID() string { return r.id }

// Populated narrows the reference to the expanded object.
func (r CategoryRef) Populated() (*Category, bool) {
	return r.category, r.category != nil
}

func (r CategoryRef) IsZero() bool { return r.id == "" && r.category == nil }

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = CategoryRef{id: id}
		return nil
	}

	var c Category
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("categoryId is neither id nor object: %w", err)
	}
	*r = CategoryRef{id: c.ID, category: &c}
	return nil
}

func (r CategoryRef) MarshalJSON() ([]byte, error) {
	if r.category != nil {
		return json.Marshal(r.category)
	}
	return json.Marshal(r.id)
}

type VendorRef struct {
	id     string
	vendor *Vendor
}

func VendorID(id string) VendorRef {
	return VendorRef{id: id}
}

func PopulatedVendor(v *Vendor) VendorRef {
	if v == nil {
		return VendorRef{}
	}
	return VendorRef{id: v.ID, vendor: v}
}

func (r VendorRef) ID() string { return r.id }

func (r VendorRef) Populated() (*Vendor, bool) {
	return r.vendor, r.vendor != nil
}

func (r VendorRef) IsZero() bool { return r.id == "" && r.vendor == nil }

func (r *VendorRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*r = VendorRef{id: id}
		return nil
	}

	var v Vendor
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("vendorId is neither id nor object: %w", err)
	}
	*r = VendorRef{id: v.ID, vendor: &v}
	return nil
}

func (r VendorRef) MarshalJSON() ([]byte, error) {
	if r.vendor != nil {
		return json.Marshal(r.vendor)
	}
	return json.Marshal(r.id)
}
