// Package summarizer provides summary generation for editor runs.
package summarizer

import (
	"time"

	"github.com/user/picx/pkg/geom"
)

// Summary contains the data collected during one CLI run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time
	Command     string

	// Editor state at the end of the run; nil when unused
	Photo   *PhotoInfo
	Poster  *PosterInfo
	Session *SessionInfo

	// Written files
	Outputs []string
}

// PhotoInfo describes the photo session.
type PhotoInfo struct {
	Source  string
	Natural geom.Size
	Display geom.Size
	Filter  string // CSS filter string
	Rotate  float64
}

// PosterInfo describes the poster session.
type PosterInfo struct {
	Template string
	Width    int
	Height   int
	Texts    int
	Images   int
}

// SessionInfo describes a replayed session.
type SessionInfo struct {
	Mode    string
	Steps   int
	Changed int
	Ignored int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary(command string) *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
		Command:     command,
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder(command string) *Builder {
	return &Builder{
		summary: NewSummary(command),
	}
}

// WithPhoto sets photo information.
func (b *Builder) WithPhoto(info PhotoInfo) *Builder {
	b.summary.Photo = &info
	return b
}

// WithPoster sets poster information.
func (b *Builder) WithPoster(info PosterInfo) *Builder {
	b.summary.Poster = &info
	return b
}

// WithSession sets replay information.
func (b *Builder) WithSession(info SessionInfo) *Builder {
	b.summary.Session = &info
	return b
}

// WithOutputs appends written file paths.
func (b *Builder) WithOutputs(paths ...string) *Builder {
	b.summary.Outputs = append(b.summary.Outputs, paths...)
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
