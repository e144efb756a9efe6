// Package seed populates a local development database with demo identities
// and tasks.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/louisbranch/taskhub/internal/auth/user"
	"github.com/louisbranch/taskhub/internal/platform/id"
	"github.com/louisbranch/taskhub/internal/storage"
	"github.com/louisbranch/taskhub/internal/task"
)

// Config holds seeding inputs. Zero values fall back to real clock and id
// generation.
type Config struct {
	Out   io.Writer
	Now   func() time.Time
	NewID func() (string, error)
}

type fixtureUser struct {
	username string
	email    string
	password string
	role     string
	tasks    []fixtureTask
}

type fixtureTask struct {
	title       string
	description string
	completed   bool
}

// fixtures is the demo data set. Passwords are deliberately weak; this data
// is for local development only.
var fixtures = []fixtureUser{
	{
		username: "admin",
		email:    "admin@taskhub.local",
		password: "admin123",
		role:     "admin",
	},
	{
		username: "alice",
		email:    "alice@taskhub.local",
		password: "alice123",
		tasks: []fixtureTask{
			{title: "Write project proposal", description: "Draft the Q3 proposal for review", completed: true},
			{title: "Review pull requests", description: "Clear the review queue"},
		},
	},
	{
		username: "bob",
		email:    "bob@taskhub.local",
		password: "bob12345",
		tasks: []fixtureTask{
			{title: "Update deployment runbook"},
		},
	},
}

// Run writes the demo users and tasks into the store. Existing usernames are
// skipped so the command is safe to re-run.
func Run(ctx context.Context, store storage.Store, cfg Config) error {
	if store == nil {
		return errors.New("store is required")
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	newID := cfg.NewID
	if newID == nil {
		newID = id.NewID
	}

	for _, fixture := range fixtures {
		u, err := user.CreateUser(user.CreateUserInput{
			Username: fixture.username,
			Email:    fixture.email,
			Password: fixture.password,
			Role:     fixture.role,
		}, now, newID)
		if err != nil {
			return fmt.Errorf("build user %s: %w", fixture.username, err)
		}
		if err := store.PutUser(ctx, u); err != nil {
			if errors.Is(err, storage.ErrUsernameTaken) {
				fmt.Fprintf(out, "skip user %s: already exists\n", fixture.username)
				continue
			}
			return fmt.Errorf("store user %s: %w", fixture.username, err)
		}
		fmt.Fprintf(out, "created user %s\n", fixture.username)

		for _, ft := range fixture.tasks {
			tsk, err := task.CreateTask(task.CreateTaskInput{
				Title:       ft.title,
				Description: ft.description,
				Completed:   ft.completed,
			}, u.ID, now, newID)
			if err != nil {
				return fmt.Errorf("build task %q: %w", ft.title, err)
			}
			if err := store.PutTask(ctx, tsk); err != nil {
				return fmt.Errorf("store task %q: %w", ft.title, err)
			}
			fmt.Fprintf(out, "created task %q for %s\n", tsk.Title, fixture.username)
		}
	}
	return nil
}
