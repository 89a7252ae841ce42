package controller

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gametracker/backend/internal/client"
	"gametracker/backend/internal/platform"
)

var (
	// ErrTitleRequired is reported before any network call when the
	// title field is empty.
	ErrTitleRequired = errors.New("title must not be empty")

	// ErrSaveInFlight rejects a second submit while the
	// upload-then-save sequence is still outstanding.
	ErrSaveInFlight = errors.New("a save is already in progress")
)

// Form manages one create/edit session for a game, including the
// two-phase image-upload-then-save protocol.
type Form struct {
	api *client.Client

	Title        string
	PlatformText string
	HoursPlayed  float64
	Completed    bool

	editing  *client.Game
	imageURL string // committed reference: existing record's or last fully saved
	newImage *imageFile

	saving    bool
	uploading bool

	onSaved func()
}

type imageFile struct {
	name string
	data []byte
}

// NewForm creates a form controller. onSaved fires after every
// successful save so the catalog can reload; nil is allowed.
func NewForm(api *client.Client, onSaved func()) *Form {
	return &Form{api: api, onSaved: onSaved}
}

// SetGame loads an existing record into the form for editing. Passing
// nil resets the form to create mode.
func (f *Form) SetGame(game *client.Game) {
	if game == nil {
		f.reset()
		return
	}

	g := *game
	f.editing = &g
	f.Title = g.Title
	f.PlatformText = platform.Join(g.Platform)
	f.HoursPlayed = g.HoursPlayed
	f.Completed = g.Completed
	f.imageURL = g.ImageURL
	f.newImage = nil
}

// AttachImage stages a newly selected local image file. The content is
// read in full here so a failed submit can re-send the same bytes on
// retry; the upload itself happens during the next submit.
func (f *Form) AttachImage(name string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return fmt.Errorf("reading image file: %w", err)
	}
	f.newImage = &imageFile{name: name, data: data}
	return nil
}

// ClearImage drops the staged file, keeping whatever reference the
// record already had.
func (f *Form) ClearImage() {
	f.newImage = nil
}

// Editing reports whether the form holds an existing record.
func (f *Form) Editing() bool {
	return f.editing != nil
}

// Saving reports whether a submit is outstanding. The submit control is
// disabled while true.
func (f *Form) Saving() bool {
	return f.saving
}

// Uploading reports whether phase 1 of a submit is outstanding.
func (f *Form) Uploading() bool {
	return f.uploading
}

// ImageURL returns the committed image reference.
func (f *Form) ImageURL() string {
	return f.imageURL
}

// Submit runs the two-phase save:
//
// Phase 1: if a new local file is staged, upload it. A failed upload
// aborts the whole save; the previous image reference and the staged
// file are both preserved so the user can retry.
//
// Phase 2: create (no existing record) or fully replace (existing
// record) the game using the phase-1 reference, the pre-existing one,
// or none.
//
// On success the create-mode form is cleared, the edit session ends,
// and the catalog is signalled to reload. On failure nothing is
// cleared and no signal fires.
func (f *Form) Submit(ctx context.Context) (client.Game, error) {
	if f.saving {
		return client.Game{}, ErrSaveInFlight
	}

	title := strings.TrimSpace(f.Title)
	if title == "" {
		return client.Game{}, ErrTitleRequired
	}

	f.saving = true
	defer func() { f.saving = false }()

	imageURL := f.imageURL
	if f.newImage != nil {
		f.uploading = true
		uploaded, err := f.api.UploadImage(ctx, f.newImage.name, bytes.NewReader(f.newImage.data))
		f.uploading = false
		if err != nil {
			return client.Game{}, fmt.Errorf("uploading image: %w", err)
		}
		imageURL = uploaded
	}

	input := client.GameInput{
		Title:       title,
		Platform:    platform.Parse(f.PlatformText),
		HoursPlayed: f.HoursPlayed,
		Completed:   f.Completed,
		ImageURL:    imageURL,
	}

	var saved client.Game
	var err error
	if f.editing != nil {
		saved, err = f.api.UpdateGame(ctx, f.editing.ID, input)
	} else {
		saved, err = f.api.CreateGame(ctx, input)
	}
	if err != nil {
		// Form state stays as entered; a retry re-runs both phases.
		return client.Game{}, err
	}

	if f.editing != nil {
		// Keep the saved values visible, leave edit mode.
		f.editing = nil
		f.imageURL = saved.ImageURL
		f.newImage = nil
	} else {
		f.reset()
	}

	if f.onSaved != nil {
		f.onSaved()
	}
	return saved, nil
}

func (f *Form) reset() {
	f.editing = nil
	f.Title = ""
	f.PlatformText = ""
	f.HoursPlayed = 0
	f.Completed = false
	f.imageURL = ""
	f.newImage = nil
}
