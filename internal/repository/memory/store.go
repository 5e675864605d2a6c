// Package memory is an in-process document store used by tests and by
// STORAGE_DRIVER=memory deployments.
package memory

import "github.com/dom/notes-api/internal/repository"

func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		User: NewUserRepository(),
		Note: NewNoteRepository(),
	}
}
