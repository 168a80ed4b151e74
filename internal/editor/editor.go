package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/quill/internal/buffer"
	"github.com/xonecas/quill/internal/command"
	"github.com/xonecas/quill/internal/constants"
	"github.com/xonecas/quill/internal/terminal"
)

// SessionStore remembers where the caret was left in each file.
type SessionStore interface {
	Caret(path string) (buffer.Location, bool)
	SetCaret(path string, loc buffer.Location)
}

type noSessions struct{}

func (noSessions) Caret(string) (buffer.Location, bool) { return buffer.Location{}, false }
func (noSessions) SetCaret(string, buffer.Location)     {}

// Options configures an Editor. The zero value is usable.
type Options struct {
	// QuitTimes is how many consecutive quit presses discard unsaved
	// changes. Values below 1 use constants.DefaultQuitTimes.
	QuitTimes int
	Sessions  SessionStore
	// Now is the clock used to expire messages.
	Now func() time.Time
}

// Editor composes the view and bars into the full screen and routes
// commands to whichever of them is active.
type Editor struct {
	view      *View
	status    *StatusBar
	message   *MessageBar
	prompt    *CommandBar
	prompting bool

	size        terminal.Size
	quitTimes   int
	quitPresses int
	shouldQuit  bool
	sessions    SessionStore
}

// New returns an editor over an empty, unnamed document.
func New(opts Options) *Editor {
	if opts.QuitTimes < 1 {
		opts.QuitTimes = constants.DefaultQuitTimes
	}
	if opts.Sessions == nil {
		opts.Sessions = noSessions{}
	}
	e := &Editor{
		view:      NewView(),
		status:    NewStatusBar(),
		message:   NewMessageBar(opts.Now),
		prompt:    NewCommandBar(),
		quitTimes: opts.QuitTimes,
		sessions:  opts.Sessions,
	}
	e.message.Post(command.HelpLine(command.Keys))
	e.refreshStatus()
	return e
}

// Load opens path. A file that cannot be read leaves an empty document that
// still saves to path.
func (e *Editor) Load(path string) {
	buf, err := buffer.Load(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("could not load file")
		e.message.Post(fmt.Sprintf(constants.OpenErrorFormat, path))
	}
	e.view.SetBuffer(buf)
	if loc, ok := e.sessions.Caret(path); ok {
		e.view.MoveTo(loc)
	}
	e.refreshStatus()
}

// ShouldQuit reports whether the user has asked to leave.
func (e *Editor) ShouldQuit() bool { return e.shouldQuit }

// Title is the window title for the current document.
func (e *Editor) Title() string {
	name := e.view.Buffer().Filename()
	if name == "" {
		name = constants.NoName
	}
	return name + " - " + constants.Name
}

// Close records the caret for the next session.
func (e *Editor) Close() {
	e.rememberCaret()
}

func (e *Editor) rememberCaret() {
	if name := e.view.Buffer().Filename(); name != "" {
		e.sessions.SetCaret(name, e.view.Caret())
	}
}

// ---------------------------------------------------------------------------
// Commands
// ---------------------------------------------------------------------------

// HandleEvent translates ev and applies the resulting command. Events that
// mean nothing are dropped.
func (e *Editor) HandleEvent(ev terminal.Event) {
	cmd, err := command.Translate(ev)
	if err != nil {
		if errors.Is(err, command.ErrUnrecognized) {
			log.Debug().Any("event", ev).Msg("ignored input")
		}
		return
	}
	e.HandleCommand(cmd)
}

// HandleCommand applies cmd to the prompt if one is open, else the view.
func (e *Editor) HandleCommand(cmd command.Command) {
	if a, ok := cmd.(command.Action); ok && a.Kind == command.Resize {
		e.Resize(a.Size)
		return
	}
	if e.prompting {
		e.handlePromptCommand(cmd)
	} else {
		e.handleViewCommand(cmd)
	}
	e.refreshStatus()
}

func (e *Editor) handleViewCommand(cmd command.Command) {
	if a, ok := cmd.(command.Action); ok && a.Kind == command.Quit {
		e.handleQuit()
		return
	}
	e.resetQuitPresses()

	switch cmd := cmd.(type) {
	case command.Action:
		switch cmd.Kind {
		case command.ForceQuit:
			e.shouldQuit = true
		case command.Save:
			e.handleSave()
		}
	case command.Edit:
		e.view.HandleEdit(cmd)
	case command.Move:
		e.view.HandleMove(cmd.Direction)
	}
}

// handlePromptCommand routes input to the save-as prompt. Movement and quit
// are ignored while it is open.
func (e *Editor) handlePromptCommand(cmd command.Command) {
	switch cmd := cmd.(type) {
	case command.Action:
		switch cmd.Kind {
		case command.Dismiss:
			e.closePrompt()
			e.message.Post(constants.SaveAborted)
		case command.ForceQuit:
			e.shouldQuit = true
		}
	case command.Edit:
		switch cmd.Kind {
		case command.InsertNewline:
			name := e.prompt.Value()
			e.closePrompt()
			if name == "" {
				e.message.Post(constants.SaveAborted)
				return
			}
			e.save(name)
		case command.Insert:
			e.prompt.Append(cmd.Char)
		case command.DeleteBackward:
			e.prompt.DeleteLast()
		}
	}
}

func (e *Editor) handleQuit() {
	if !e.view.Buffer().IsModified() || e.quitPresses+1 >= e.quitTimes {
		e.shouldQuit = true
		return
	}
	e.quitPresses++
	e.message.Post(fmt.Sprintf(constants.QuitWarningFormat, e.quitTimes-e.quitPresses))
}

func (e *Editor) resetQuitPresses() {
	if e.quitPresses > 0 {
		e.quitPresses = 0
		e.message.Post("")
	}
}

func (e *Editor) handleSave() {
	if e.view.Buffer().Filename() == "" {
		e.openPrompt(constants.SavePrompt)
		return
	}
	e.save("")
}

// save writes the document, to name when it is set. The outcome is posted
// to the message bar.
func (e *Editor) save(name string) {
	buf := e.view.Buffer()
	summary := buf.ChangeSummary()

	var err error
	if name != "" {
		err = buf.SaveAs(name)
	} else {
		err = buf.Save()
	}
	if err != nil {
		target := name
		if target == "" {
			target = buf.Filename()
		}
		log.Error().Err(err).Str("file", target).Msg("save failed")
		e.message.Post(constants.SaveErrorNotice)
		return
	}

	log.Info().Str("file", buf.Filename()).Stringer("changes", summary).Msg("saved")
	notice := constants.SavedNotice
	if !summary.Empty() {
		notice += " (" + summary.String() + ")"
	}
	e.message.Post(notice)
	e.rememberCaret()
}

func (e *Editor) openPrompt(prompt string) {
	e.prompt.Open(prompt)
	e.prompting = true
}

// closePrompt hands the bottom row back to the message bar.
func (e *Editor) closePrompt() {
	e.prompting = false
	e.message.MarkDirty(true)
}

func (e *Editor) refreshStatus() {
	e.status.Update(e.view.Status())
}

// ---------------------------------------------------------------------------
// Layout and rendering
// ---------------------------------------------------------------------------

// Resize lays the components out for a terminal of the given size: the view
// on top, then the status bar, then the message or command bar.
func (e *Editor) Resize(size terminal.Size) {
	e.size = size
	bar := terminal.Size{Width: size.Width, Height: 1}
	Resize(e.view, terminal.Size{Width: size.Width, Height: max(size.Height-2, 0)})
	Resize(e.status, bar)
	Resize(e.message, bar)
	Resize(e.prompt, bar)
}

// Render draws whatever changed since the last frame and places the caret.
// Short terminals lose the view first, then the status bar.
func (e *Editor) Render(d terminal.Driver) error {
	if e.size.Width == 0 || e.size.Height == 0 {
		return nil
	}
	bottom := e.size.Height - 1

	if err := d.HideCaret(); err != nil {
		return fmt.Errorf("hide caret: %w", err)
	}
	if e.prompting {
		Render(e.prompt, d, bottom)
	} else {
		Render(e.message, d, bottom)
	}
	if e.size.Height > 1 {
		Render(e.status, d, e.size.Height-2)
	}
	if e.size.Height > 2 {
		Render(e.view, d, 0)
	}

	caret := e.view.CaretPosition()
	if e.prompting {
		caret = terminal.Position{Row: bottom, Col: e.prompt.CaretCol()}
	}
	if err := d.MoveCaret(caret); err != nil {
		return fmt.Errorf("move caret: %w", err)
	}
	if err := d.ShowCaret(); err != nil {
		return fmt.Errorf("show caret: %w", err)
	}
	return d.Execute()
}

// Run drives the editor from in until the user quits or input ends.
func (e *Editor) Run(d terminal.Driver, in terminal.InputSource) error {
	size, err := d.Size()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	e.Resize(size)

	for {
		if err := e.Render(d); err != nil {
			log.Warn().Err(err).Msg("render failed")
		}
		if e.shouldQuit {
			break
		}
		ev, err := in.NextEvent()
		if errors.Is(err, terminal.ErrClosed) {
			break
		}
		if err != nil {
			e.Close()
			return fmt.Errorf("read input: %w", err)
		}
		e.HandleEvent(ev)
	}
	e.Close()
	return nil
}

// View returns the main document view.
func (e *Editor) View() *View { return e.view }

// Message returns the message bar's current text.
func (e *Editor) Message() string { return e.message.Message() }

// Prompting reports whether the save-as prompt is open.
func (e *Editor) Prompting() bool { return e.prompting }
