// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package profiles keeps named collections of sanitizer terms, persists them
// and moves them in and out of backup documents.
package profiles

import (
	"fmt"
	"strings"

	"llm-sanitizer/internal/sanitizer"

	"github.com/google/uuid"
)

const vaultComponent = "vault"

// Profile is a named collection of terms
type Profile struct {
	ID    string           `json:"id" yaml:"id"`
	Name  string           `json:"name" yaml:"name"`
	Terms []sanitizer.Term `json:"terms" yaml:"terms"`
}

// ActiveTerms returns the number of active terms in the profile
func (p Profile) ActiveTerms() int {
	n := 0
	for _, term := range p.Terms {
		if term.IsActive {
			n++
		}
	}
	return n
}

// Vault is the persisted set of profiles and the id of the selected one
type Vault struct {
	Profiles        []Profile `json:"profiles" yaml:"profiles"`
	ActiveProfileID string    `json:"activeProfileId" yaml:"active_profile_id"`
}

// DefaultVault returns the vault a new installation starts with
func DefaultVault() *Vault {
	return &Vault{
		Profiles: []Profile{
			{
				ID:    "default",
				Name:  "Default",
				Terms: []sanitizer.Term{},
			},
			{
				ID:   "work",
				Name: "Work Project A",
				Terms: []sanitizer.Term{
					{ID: "1", Original: "Project Orion", Placeholder: "{{PROJ_01}}", IsActive: true},
					{ID: "2", Original: "John Doe", Placeholder: "{{PERSON_REF_A}}", IsActive: true},
					{ID: "3", Original: "API_KEY_SECRET", Placeholder: "{{SECRET_CRED_1}}", IsActive: true},
				},
			},
		},
		ActiveProfileID: "work",
	}
}

// Active returns the selected profile, falling back to the first profile when
// the selection is stale. It returns nil for an empty vault.
func (v *Vault) Active() *Profile {
	if len(v.Profiles) == 0 {
		return nil
	}
	if p := v.Profile(v.ActiveProfileID); p != nil {
		return p
	}
	return &v.Profiles[0]
}

// Profile returns the profile with the given id, or nil
func (v *Vault) Profile(id string) *Profile {
	for i := range v.Profiles {
		if v.Profiles[i].ID == id {
			return &v.Profiles[i]
		}
	}
	return nil
}

// Resolve returns the profile with the given id or, for an empty id, the
// active profile
func (v *Vault) Resolve(id string) (*Profile, error) {
	if id == "" {
		if p := v.Active(); p != nil {
			return p, nil
		}
		return nil, NewError(ErrorNotFound, "vault has no profiles", vaultComponent, nil)
	}
	if p := v.Profile(id); p != nil {
		return p, nil
	}
	return nil, v.notFound(id)
}

// SetActive selects the profile with the given id
func (v *Vault) SetActive(id string) error {
	if v.Profile(id) == nil {
		return v.notFound(id)
	}
	v.ActiveProfileID = id
	return nil
}

// CreateProfile adds an empty profile and selects it
func (v *Vault) CreateProfile(name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewError(ErrorInvalidInput, "profile name cannot be empty", vaultComponent, nil)
	}
	v.Profiles = append(v.Profiles, Profile{
		ID:    uuid.New().String(),
		Name:  name,
		Terms: []sanitizer.Term{},
	})
	created := &v.Profiles[len(v.Profiles)-1]
	v.ActiveProfileID = created.ID
	return created, nil
}

// AddTerm puts term at the front of the profile's term list
func (v *Vault) AddTerm(profileID string, term sanitizer.Term) error {
	p := v.Profile(profileID)
	if p == nil {
		return v.notFound(profileID)
	}
	if strings.TrimSpace(term.Original) == "" {
		return NewError(ErrorInvalidInput, "term cannot be empty", vaultComponent, nil)
	}
	if err := sanitizer.ValidatePlaceholder(term.Placeholder); err != nil {
		return NewError(ErrorInvalidInput, fmt.Sprintf("invalid placeholder for %q", term.Original), vaultComponent, err)
	}
	p.Terms = append([]sanitizer.Term{term}, p.Terms...)
	return nil
}

// RemoveTerm deletes the term with the given id
func (v *Vault) RemoveTerm(profileID, termID string) error {
	p := v.Profile(profileID)
	if p == nil {
		return v.notFound(profileID)
	}
	for i, term := range p.Terms {
		if term.ID == termID {
			p.Terms = append(p.Terms[:i], p.Terms[i+1:]...)
			return nil
		}
	}
	return NewError(ErrorNotFound, fmt.Sprintf("term %q not found in profile %q", termID, p.Name), vaultComponent, nil)
}

// ToggleTerm flips the term's active flag and returns the new value
func (v *Vault) ToggleTerm(profileID, termID string) (bool, error) {
	p := v.Profile(profileID)
	if p == nil {
		return false, v.notFound(profileID)
	}
	for i := range p.Terms {
		if p.Terms[i].ID == termID {
			p.Terms[i].IsActive = !p.Terms[i].IsActive
			return p.Terms[i].IsActive, nil
		}
	}
	return false, NewError(ErrorNotFound, fmt.Sprintf("term %q not found in profile %q", termID, p.Name), vaultComponent, nil)
}

// MergeImported replaces profiles whose id matches an imported profile and
// appends the rest. It returns how many profiles were replaced and added.
func (v *Vault) MergeImported(imported []Profile) (replaced, added int) {
	for _, in := range imported {
		if existing := v.Profile(in.ID); existing != nil {
			*existing = in
			replaced++
			continue
		}
		v.Profiles = append(v.Profiles, in)
		added++
	}
	return replaced, added
}

func (v *Vault) notFound(id string) *Error {
	return NewError(ErrorNotFound, fmt.Sprintf("profile %q not found", id), vaultComponent, nil)
}
