package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/energyflow/internal/backup"
	"github.com/julianstephens/energyflow/internal/config"
	"github.com/julianstephens/energyflow/internal/logger"
	"github.com/julianstephens/energyflow/internal/models"
	"github.com/julianstephens/energyflow/internal/planner"
	"github.com/julianstephens/energyflow/internal/storage"
)

// Context is passed to every command. Planner is nil until the store is loaded.
type Context struct {
	Store   storage.Provider
	Planner *planner.Service
	Config  *config.Manager
	Debug   bool
}

// Service returns the planner, creating it over the store on first use.
func (c *Context) Service() *planner.Service {
	if c.Planner == nil {
		c.Planner = planner.New(c.Store)
	}
	return c.Planner
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*storage.PostgresStore); ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// confirm asks a yes/no question on stdin. yes skips the prompt.
func confirm(prompt string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// shortID is the id prefix shown in listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// resolveID expands a unique id prefix to a full board task id.
func resolveID(b models.Board, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("task id is required")
	}
	var matches []string
	for _, z := range models.Zones {
		for _, t := range *b.Column(z) {
			if t.ID == prefix {
				return t.ID, nil
			}
			if strings.HasPrefix(t.ID, prefix) {
				matches = append(matches, t.ID)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no task matches id %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("id %q is ambiguous (%d tasks match)", prefix, len(matches))
	}
}
