package platform

import (
	"context"

	"github.com/mj1618/dock-cli/internal/model"
)

// ProcessDirectory enumerates running applications.
type ProcessDirectory interface {
	// RunningApplications returns a fresh snapshot of the process list.
	RunningApplications(ctx context.Context) ([]RunningApp, error)
}

// EventSource delivers application lifecycle notifications.
type EventSource interface {
	// Subscribe registers fn for events of the given kind. The returned
	// subscription must be cancelled to stop delivery.
	Subscribe(kind EventKind, fn func(Event)) (Subscription, error)
}

// Subscription is a registration handle returned by EventSource.Subscribe.
type Subscription interface {
	Cancel()
}

// PreferencesStore reads persisted preference domains.
type PreferencesStore interface {
	// PersistentDomain returns the contents of the named domain, or
	// ErrDomainNotFound when the domain does not exist.
	PersistentDomain(name string) (map[string]any, error)
}

// IconResolver looks up icons. Lookups report false when nothing matched.
type IconResolver interface {
	ApplicationPath(bundleID string) (string, bool)
	IconForFile(path string) (model.Icon, bool)
	GenericIcon(kind string) (model.Icon, bool)
}

// BadgeSource reports notification badge counts by item name.
type BadgeSource interface {
	BadgeCount(name string) (int, bool)
}

// Workspace opens files and launches applications.
type Workspace interface {
	// OpenFile asks the OS to open path with its default application.
	OpenFile(path string) bool
	// LaunchApplication asks the OS to launch the application by bundle identifier.
	LaunchApplication(bundleID string) bool
}

// Runnable is implemented by event sources that need a background loop,
// such as ProcessPoller.
type Runnable interface {
	Run(ctx context.Context) error
}

// Generic icon names used when no file or bundle icon is available.
const (
	IconGenericFolder   = "GenericFolderIcon"
	IconGenericDocument = "GenericDocumentIcon"
	IconTrash           = "TrashIcon"
	IconFullTrash       = "FullTrashIcon"
)

// GenericIconName maps a dock tile kind to a system icon name. Trash
// kinds are passed through unchanged.
func GenericIconName(kind string) string {
	switch kind {
	case "directory-tile", string(model.KindDirectory):
		return IconGenericFolder
	case IconTrash, IconFullTrash:
		return kind
	default:
		return IconGenericDocument
	}
}
