package interfaces

import "probpick/internal/models"

// ArchiveReaderInterface reads back histories archived by reset.
type ArchiveReaderInterface interface {
	List() ([]string, error)
	Open(index int) (*models.SelectionHistory, string, error)
}
