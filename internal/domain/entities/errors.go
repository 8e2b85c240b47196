package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds raised while resolving or querying a manifest. Compare with errors.Is.
var (
	ErrMalformedDocument      = errors.New("malformed manifest document")
	ErrDuplicateRemoteName    = errors.New("duplicate remote name")
	ErrDuplicateProject       = errors.New("duplicate project")
	ErrDuplicateGroupName     = errors.New("duplicate group name")
	ErrDuplicateSrc           = errors.New("duplicate checkout path")
	ErrUnknownRemoteReference = errors.New("unknown remote reference")
	ErrUnknownGroupMember     = errors.New("unknown group member")
	ErrUnknownGroupRequested  = errors.New("unknown group requested")
)

// ManifestError carries an error kind and a human-readable message.
type ManifestError struct {
	Kind    error
	Message string
}

func (e *ManifestError) Error() string { return e.Message }

func (e *ManifestError) Unwrap() error { return e.Kind }

func newManifestError(kind error, format string, args ...any) *ManifestError {
	return &ManifestError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NewMalformedDocumentError wraps a decoder failure into a MalformedDocument error.
func NewMalformedDocumentError(format string, cause error) *ManifestError {
	return newManifestError(ErrMalformedDocument, "Malformed %s manifest: %v", format, cause)
}

// UnknownMembersError lists every project a group references that the manifest does not declare.
type UnknownMembersError struct {
	Group   string
	Members []string
}

func (e *UnknownMembersError) Error() string {
	return fmt.Sprintf("Unknown projects in group %s: %s", e.Group, strings.Join(e.Members, ", "))
}

func (e *UnknownMembersError) Unwrap() error { return ErrUnknownGroupMember }
