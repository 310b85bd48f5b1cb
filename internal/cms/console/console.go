package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fonovalabs/fonova-web/internal/cms/domain"
	"github.com/fonovalabs/fonova-web/internal/cms/session"
	"github.com/fonovalabs/fonova-web/internal/logging"
	"github.com/google/uuid"
)

// ErrQuit is returned by Execute for the quit command.
var ErrQuit = errors.New("quit")

const helpLogin = `commands:
  login <username>   submit credentials (password is prompted)
  help, quit`

const helpOTP = `commands:
  otp <code>         submit the 6 digit code from the email
  back               return to the login step
  help, quit`

const helpDashboard = `commands:
  tab testimonials|projects
  list               re-fetch the active tab
  new                open an empty form
  edit <id>          open the form on an item
  set <field> <value>
  media add | media set <i> type|url <value> | media rm <i>
  show               print the open form
  save               create or update from the form
  cancel             close the form
  delete <id>
  logout, help, quit`

// Console is the line-oriented CMS front end.
type Console struct {
	sess *session.Controller
	dash *Dashboard

	in           *bufio.Scanner
	out          io.Writer
	readPassword func() (string, error)
}

type Option func(*Console)

// WithPasswordReader replaces reading the password as the next input line,
// e.g. with a no-echo terminal read.
func WithPasswordReader(fn func() (string, error)) Option {
	return func(c *Console) { c.readPassword = fn }
}

func New(sess *session.Controller, dash *Dashboard, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		sess: sess,
		dash: dash,
		in:   bufio.NewScanner(in),
		out:  out,
	}
	c.readPassword = c.readLine
	for _, opt := range opts {
		opt(c)
	}
	sess.OnVerified(func() { fmt.Fprintln(c.out, session.MsgLoginSuccess) })
	return c
}

// Run reads commands until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	if c.sess.Stage() == domain.StageAuthenticated {
		fmt.Fprintln(c.out, "Restored previous session.")
		c.afterDashboardCommand(c.dash.Open(ctx))
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, c.prompt())
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}

		cmdCtx := logging.WithRequestID(ctx, uuid.NewString())
		err := c.Execute(cmdCtx, c.in.Text())
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case errors.Is(err, domain.ErrCancelled):
			fmt.Fprintln(c.out, "Cancelled.")
		case err != nil:
			fmt.Fprintf(c.out, "error: %s\n", domain.Message(err))
		}
	}
}

func (c *Console) prompt() string {
	switch c.sess.Stage() {
	case domain.StageAwaitingCredentials:
		return "login> "
	case domain.StageAwaitingOTP:
		return "otp> "
	default:
		return fmt.Sprintf("cms[%s]> ", c.dash.Tab())
	}
}

// Execute runs one command line.
func (c *Console) Execute(ctx context.Context, line string) error {
	cmd, rest := cut(line)
	switch cmd {
	case "":
		return nil
	case "quit", "exit":
		return ErrQuit
	case "help":
		c.help()
		return nil
	}

	switch c.sess.Stage() {
	case domain.StageAwaitingCredentials:
		return c.loginCommand(ctx, cmd, rest)
	case domain.StageAwaitingOTP:
		return c.otpCommand(ctx, cmd, rest)
	default:
		c.dash.notice = Notice{}
		err := c.dashboardCommand(ctx, cmd, rest)
		c.afterDashboardCommand(err)
		if errors.Is(err, domain.ErrCancelled) {
			return err
		}
		return nil
	}
}

func (c *Console) loginCommand(ctx context.Context, cmd, rest string) error {
	if cmd != "login" {
		return unknownCommand(cmd)
	}
	username := strings.TrimSpace(rest)
	fmt.Fprint(c.out, "Password: ")
	password, err := c.readPassword()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if err := c.sess.SubmitCredentials(ctx, username, password); err != nil {
		return err
	}
	fmt.Fprintln(c.out, session.MsgOTPSent)
	if email := c.sess.MaskedEmail(); email != "" {
		fmt.Fprintf(c.out, "Code sent to %s\n", email)
	}
	return nil
}

func (c *Console) otpCommand(ctx context.Context, cmd, rest string) error {
	switch cmd {
	case "otp":
		if err := c.sess.SubmitOTP(ctx, rest); err != nil {
			return err
		}
		c.afterDashboardCommand(c.dash.Open(ctx))
		return nil
	case "back":
		return c.sess.BackToLogin()
	}
	return unknownCommand(cmd)
}

func (c *Console) dashboardCommand(ctx context.Context, cmd, rest string) error {
	switch cmd {
	case "logout":
		c.sess.Logout(ctx)
		fmt.Fprintln(c.out, "Logged out.")
		return nil
	case "tab":
		tab, err := ParseTab(strings.TrimSpace(rest))
		if err != nil {
			return c.dash.report(err)
		}
		return c.dash.SwitchTab(ctx, tab)
	case "list":
		return c.dash.Refresh(ctx)
	case "new":
		c.dash.BeginCreate()
		return c.dash.RenderDraft(c.out)
	case "edit":
		if err := c.dash.BeginEdit(strings.TrimSpace(rest)); err != nil {
			return err
		}
		return c.dash.RenderDraft(c.out)
	case "set":
		field, value := cut(rest)
		return c.dash.SetField(field, value)
	case "media":
		return c.mediaCommand(rest)
	case "show":
		return c.dash.RenderDraft(c.out)
	case "save":
		return c.dash.Save(ctx)
	case "cancel":
		c.dash.Cancel()
		return nil
	case "delete":
		return c.dash.Delete(ctx, strings.TrimSpace(rest), c)
	}
	return c.dash.report(unknownCommand(cmd))
}

func (c *Console) mediaCommand(rest string) error {
	draft, err := c.dash.Media()
	if err != nil {
		return err
	}

	op, args := cut(rest)
	switch op {
	case "add":
		draft.AddMediaItem()
	case "set":
		idx, tail := cut(args)
		field, value := cut(tail)
		i, err := mediaIndex(idx)
		if err != nil {
			return c.dash.report(err)
		}
		if err := draft.UpdateMediaItem(i, field, value); err != nil {
			return c.dash.report(mediaError(err))
		}
	case "rm":
		i, err := mediaIndex(strings.TrimSpace(args))
		if err != nil {
			return c.dash.report(err)
		}
		if err := draft.RemoveMediaItem(i); err != nil {
			return c.dash.report(mediaError(err))
		}
	default:
		return c.dash.report(domain.NewValidationError("Usage: media add | media set <i> type|url <value> | media rm <i>"))
	}
	return c.dash.RenderDraft(c.out)
}

// Confirm asks on the console; anything but y/yes declines.
func (c *Console) Confirm(prompt string) bool {
	fmt.Fprintf(c.out, "%s [y/N] ", prompt)
	answer, err := c.readLine()
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// afterDashboardCommand prints the outcome of a dashboard command.
func (c *Console) afterDashboardCommand(err error) {
	if c.sess.Stage() != domain.StageAuthenticated {
		if err != nil {
			fmt.Fprintf(c.out, "error: %s\n", domain.Message(err))
		}
		return
	}
	if errors.Is(err, domain.ErrCancelled) {
		return
	}

	n := c.dash.Notice()
	if n.Success != "" {
		fmt.Fprintln(c.out, n.Success)
	}
	if n.Error != "" {
		fmt.Fprintf(c.out, "error: %s\n", n.Error)
	}
	if err == nil && !c.dash.FormVisible() {
		c.dash.Render(c.out)
	}
}

func (c *Console) help() {
	switch c.sess.Stage() {
	case domain.StageAwaitingCredentials:
		fmt.Fprintln(c.out, helpLogin)
	case domain.StageAwaitingOTP:
		fmt.Fprintln(c.out, helpOTP)
	default:
		fmt.Fprintln(c.out, helpDashboard)
	}
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

func cut(s string) (string, string) {
	head, tail, _ := strings.Cut(strings.TrimSpace(s), " ")
	return head, strings.TrimSpace(tail)
}

func mediaIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, domain.NewValidationError(fmt.Sprintf("%q is not a media index", s))
	}
	return i, nil
}

func mediaError(err error) error {
	if errors.Is(err, domain.ErrMediaIndex) {
		return domain.NewValidationError("No media item at that index")
	}
	return err
}

func unknownCommand(cmd string) error {
	return domain.NewValidationError(fmt.Sprintf("Unknown command %q, try help", cmd))
}
