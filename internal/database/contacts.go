package database

import (
	"kontaktvault/internal/common"
	"kontaktvault/internal/models"
	"kontaktvault/internal/store"
)

// Contact-level operations. Every mutation sets the modified flag so
// Close knows whether a save is pending.

// AddContact appends a contact to the open database.
func (m *Manager) AddContact(c models.Contact) error {
	if !m.IsOpen() {
		return common.ErrNotOpen
	}
	m.store.Add(c)
	m.modified = true
	return nil
}

// UpdateContact replaces the stored contact with the same id.
func (m *Manager) UpdateContact(c models.Contact) error {
	if !m.IsOpen() {
		return common.ErrNotOpen
	}
	if !m.store.Update(c) {
		return common.ErrNotFound
	}
	m.modified = true
	return nil
}

// DeleteContact removes the contact with the given id.
func (m *Manager) DeleteContact(id string) error {
	if !m.IsOpen() {
		return common.ErrNotOpen
	}
	if !m.store.Remove(id) {
		return common.ErrNotFound
	}
	m.modified = true
	return nil
}

// Contact returns the contact with the given id.
func (m *Manager) Contact(id string) (models.Contact, error) {
	if !m.IsOpen() {
		return models.Contact{}, common.ErrNotOpen
	}
	c, ok := m.store.FindByID(id)
	if !ok {
		return models.Contact{}, common.ErrNotFound
	}
	return c, nil
}

// Contacts searches and sorts the open database.
func (m *Manager) Contacts(f store.Filter) []models.Contact {
	if !m.IsOpen() {
		return nil
	}
	return m.store.Search(f)
}

// Tags returns the derived global tag list.
func (m *Manager) Tags() []string {
	if !m.IsOpen() {
		return nil
	}
	return append([]string(nil), m.store.Tags...)
}

// Count returns the number of contacts.
func (m *Manager) Count() int {
	if !m.IsOpen() {
		return 0
	}
	return m.store.Len()
}

// Metadata returns a copy of the database metadata.
func (m *Manager) Metadata() (models.Metadata, error) {
	if !m.IsOpen() {
		return models.Metadata{}, common.ErrNotOpen
	}
	return m.store.Metadata, nil
}

// ImportContacts adds a batch of externally sourced contacts (the
// import/export boundary from presentation layers) and returns how many
// were added.
func (m *Manager) ImportContacts(contacts []models.Contact) (int, error) {
	if !m.IsOpen() {
		return 0, common.ErrNotOpen
	}
	for _, c := range contacts {
		m.store.Add(c)
	}
	if len(contacts) > 0 {
		m.modified = true
	}
	return len(contacts), nil
}
