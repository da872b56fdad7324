package fixtures

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/linskybing/issue-desk/internal/domain/issue"
	"github.com/linskybing/issue-desk/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v2"
)

//go:embed default.yaml
var defaultData []byte

var ErrInvalidFixture = errors.New("invalid fixture")

// Set is the seed data for a session.
type Set struct {
	Users  []user.User
	Issues []*issue.Issue
}

type file struct {
	Users  []userFixture  `yaml:"users"`
	Issues []issueFixture `yaml:"issues"`
}

type userFixture struct {
	ID           string `yaml:"id"`
	Username     string `yaml:"username"`
	Name         string `yaml:"name"`
	Rank         int    `yaml:"rank"`
	Role         string `yaml:"role"`
	Department   string `yaml:"department"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

type issueFixture struct {
	ID          string              `yaml:"id"`
	Title       string              `yaml:"title"`
	Description string              `yaml:"description"`
	Category    string              `yaml:"category"`
	Tags        []string            `yaml:"tags"`
	Priority    string              `yaml:"priority"`
	Reporter    issue.Participant   `yaml:"reporter"`
	Assignee    issue.Participant   `yaml:"assignee"`
	CC          []issue.Participant `yaml:"cc"`
	Status      string              `yaml:"status"`
	ReadLevel   int                 `yaml:"read_level"`
	Attachments []issue.Attachment  `yaml:"attachments"`
	// Age places CreatedAt relative to load time, e.g. "200h".
	Age       string `yaml:"age"`
	CreatedAt string `yaml:"created_at"`
}

// Default returns the embedded demo data set.
func Default(now time.Time) (*Set, error) {
	return Parse(defaultData, now)
}

// Load reads a fixture file; an empty path means the embedded defaults.
func Load(path string, now time.Time) (*Set, error) {
	if path == "" {
		return Default(now)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return Parse(data, now)
}

func Parse(data []byte, now time.Time) (*Set, error) {
	var f file
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFixture, err)
	}

	set := &Set{}
	for _, uf := range f.Users {
		u, err := uf.toUser()
		if err != nil {
			return nil, err
		}
		set.Users = append(set.Users, u)
	}
	seen := make(map[string]struct{}, len(f.Issues))
	for _, in := range f.Issues {
		iss, err := in.toIssue(now)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[iss.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate issue id %s", ErrInvalidFixture, iss.ID)
		}
		seen[iss.ID] = struct{}{}
		set.Issues = append(set.Issues, iss)
	}
	return set, nil
}

func (uf userFixture) toUser() (user.User, error) {
	if uf.ID == "" || uf.Username == "" {
		return user.User{}, fmt.Errorf("%w: user needs id and username", ErrInvalidFixture)
	}
	hash := uf.PasswordHash
	if hash == "" {
		if uf.Password == "" {
			return user.User{}, fmt.Errorf("%w: user %s has no password", ErrInvalidFixture, uf.Username)
		}
		h, err := bcrypt.GenerateFromPassword([]byte(uf.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, fmt.Errorf("hash password for %s: %w", uf.Username, err)
		}
		hash = string(h)
	}
	role := uf.Role
	if role == "" {
		role = user.RoleMember
	}
	return user.User{
		ID:           uf.ID,
		Username:     uf.Username,
		Name:         uf.Name,
		Rank:         uf.Rank,
		Role:         role,
		Department:   uf.Department,
		PasswordHash: hash,
	}, nil
}

func (in issueFixture) toIssue(now time.Time) (*issue.Issue, error) {
	if in.ID == "" || in.Title == "" {
		return nil, fmt.Errorf("%w: issue needs id and title", ErrInvalidFixture)
	}
	prio, err := issue.ParsePriority(in.Priority)
	if err != nil {
		return nil, fmt.Errorf("%w: issue %s: %v", ErrInvalidFixture, in.ID, err)
	}
	status := issue.StatusIssueRaised
	if in.Status != "" {
		if status, err = issue.ParseStatus(in.Status); err != nil {
			return nil, fmt.Errorf("%w: issue %s: %v", ErrInvalidFixture, in.ID, err)
		}
	}
	if _, dup := issue.DuplicateParticipant(in.CC); dup {
		return nil, fmt.Errorf("%w: issue %s has duplicate cc", ErrInvalidFixture, in.ID)
	}

	created := now
	switch {
	case in.CreatedAt != "":
		if created, err = time.Parse(time.RFC3339, in.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: issue %s created_at: %v", ErrInvalidFixture, in.ID, err)
		}
	case in.Age != "":
		age, err := time.ParseDuration(in.Age)
		if err != nil {
			return nil, fmt.Errorf("%w: issue %s age: %v", ErrInvalidFixture, in.ID, err)
		}
		created = now.Add(-age)
	}

	iss := &issue.Issue{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Tags:        in.Tags,
		Priority:    prio,
		Reporter:    in.Reporter,
		Assignee:    in.Assignee,
		CC:          in.CC,
		Status:      status,
		ReadLevel:   in.ReadLevel,
		Attachments: in.Attachments,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	if iss.CC == nil {
		iss.CC = []issue.Participant{}
	}
	if status == issue.StatusMeetingScheduled {
		iss.MeetingDate = &created
	}
	if status == issue.StatusResolved {
		iss.ResolvedDate = &created
	}
	return iss, nil
}
