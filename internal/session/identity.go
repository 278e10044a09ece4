package session

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/diogo/uplyft/internal/models"
)

// LoadIdentity reads the display identity, substituting defaults for absent or empty keys
func LoadIdentity(store Store) models.Identity {
	id := models.DefaultIdentity()
	if store == nil {
		return id
	}

	if name, ok := store.Get(models.KeyUserName); ok && name != "" {
		id.Name = name
	}
	if email, ok := store.Get(models.KeyUserEmail); ok && email != "" {
		id.Email = email
	}
	return id
}

// SignedIn reports whether a session has been written
func SignedIn(store Store) bool {
	if store == nil {
		return false
	}
	_, ok := store.Get(models.KeyUserEmail)
	return ok
}

// SignIn writes both identity fields
func SignIn(store Store, id models.Identity) error {
	if err := store.Set(models.KeyUserEmail, id.Email); err != nil {
		return fmt.Errorf("failed to save %s: %w", models.KeyUserEmail, err)
	}
	if err := store.Set(models.KeyUserName, id.Name); err != nil {
		return fmt.Errorf("failed to save %s: %w", models.KeyUserName, err)
	}
	glog.V(1).Infof("session: signed in as %q", id.Email)
	return nil
}

// SignOut removes both identity fields
func SignOut(store Store) error {
	if err := store.Remove(models.KeyUserName); err != nil {
		return fmt.Errorf("failed to clear %s: %w", models.KeyUserName, err)
	}
	if err := store.Remove(models.KeyUserEmail); err != nil {
		return fmt.Errorf("failed to clear %s: %w", models.KeyUserEmail, err)
	}
	glog.V(1).Info("session: signed out")
	return nil
}
