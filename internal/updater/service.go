// Package updater provides self-update for the backlightctl binary.
package updater

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/andy-sdc/backlight/internal/logging"
	"github.com/andy-sdc/backlight/internal/version"
	"github.com/creativeprojects/go-selfupdate"
)

// Options configures the updater.
type Options struct {
	Repository string // GitHub repo slug, e.g. "andy-sdc/backlight"
	Prerelease bool   // Whether to include prereleases
}

// UpdateInfo describes the outcome of an update check.
type UpdateInfo struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseNotes    string
	ReleaseURL      string
	PublishedAt     time.Time
	UpdateAvailable bool
}

// Updater checks for and applies new releases of the running binary.
// Commands are one-shot, so there is no state machine: check, apply, and
// rollback are each a single synchronous call.
type Updater struct {
	repository    selfupdate.Repository
	updater       *selfupdate.Updater
	backupManager *backupManager
	latestRelease *selfupdate.Release

	enabled        bool
	disabledReason string

	logger *slog.Logger
}

// New creates an updater. When the directory holding the running binary is
// not writable, the updater comes back disabled rather than failing, so
// callers can report the reason.
func New(opts Options) (*Updater, error) {
	logger := logging.GetLogger("updater")

	canWrite, reason := checkWritePermission()
	if !canWrite {
		return &Updater{
			enabled:        false,
			disabledReason: reason,
			logger:         logger,
		}, nil
	}

	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	sdUpdater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:     source,
		Prerelease: opts.Prerelease,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	backupMgr, err := newBackupManager(logger)
	if err != nil {
		logger.Warn("Failed to create backup manager", "error", err)
	}

	return &Updater{
		repository:    selfupdate.ParseSlug(opts.Repository),
		updater:       sdUpdater,
		backupManager: backupMgr,
		enabled:       true,
		logger:        logger,
	}, nil
}

func checkWritePermission() (bool, string) {
	exe, err := os.Executable()
	if err != nil {
		return false, fmt.Sprintf("failed to get executable path: %v", err)
	}

	// Resolve symlinks
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return false, fmt.Sprintf("failed to resolve symlinks: %v", err)
	}

	dir := filepath.Dir(exe)

	// Try creating temp file in same directory
	tmp := filepath.Join(dir, ".backlightctl.update.test")
	f, err := os.Create(tmp)
	if err != nil {
		return false, fmt.Sprintf("no write permission to %s: %v", dir, err)
	}
	f.Close()
	os.Remove(tmp)
	return true, ""
}

// IsEnabled returns whether the updater is operational.
// Returns false if the write permission check failed.
func (u *Updater) IsEnabled() bool {
	return u.enabled
}

// DisabledReason returns why the updater is disabled.
// Returns empty string if the updater is enabled.
func (u *Updater) DisabledReason() string {
	return u.disabledReason
}

// CheckForUpdate queries GitHub for the latest release and compares it
// against the running version. Nothing is downloaded.
func (u *Updater) CheckForUpdate(ctx context.Context) (*UpdateInfo, error) {
	if !u.enabled {
		return nil, newError(ErrCodeDisabled, u.disabledReason, nil)
	}

	currentVersion := version.Version

	release, found, err := u.updater.DetectLatest(ctx, u.repository)
	if err != nil {
		return nil, newError(ErrCodeCheckFailed, "failed to check for updates", err)
	}
	if !found {
		return nil, newError(ErrCodeNotFound, "repository not found or has no releases", nil)
	}

	// Compare versions - dev is always considered outdated
	isNewer := currentVersion == "dev" || release.GreaterThan(currentVersion)

	info := &UpdateInfo{
		CurrentVersion:  currentVersion,
		LatestVersion:   release.Version(),
		UpdateAvailable: isNewer,
	}
	if isNewer {
		info.ReleaseNotes = release.ReleaseNotes
		info.ReleaseURL = release.URL
		info.PublishedAt = release.PublishedAt
		u.latestRelease = release
	}

	return info, nil
}

// ApplyUpdate downloads the latest release and replaces the running
// binary, backing up the current one first and restoring the backup if
// the replacement fails.
func (u *Updater) ApplyUpdate(ctx context.Context) error {
	if !u.enabled {
		return newError(ErrCodeDisabled, u.disabledReason, nil)
	}

	if u.latestRelease == nil {
		info, err := u.CheckForUpdate(ctx)
		if err != nil {
			return err
		}
		if !info.UpdateAvailable {
			return newError(ErrCodeNoUpdate, "no update available", nil)
		}
	}

	if u.backupManager != nil {
		if err := u.backupManager.createBackup(); err != nil {
			return newError(ErrCodeBackupFailed, "failed to create backup", err)
		}
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return newError(ErrCodeApplyFailed, "failed to get executable path", err)
	}

	if err := u.updater.UpdateTo(ctx, u.latestRelease, exe); err != nil {
		u.attemptRollback()
		return newError(ErrCodeApplyFailed, "failed to apply update", err)
	}

	u.logger.Info("Update applied", "version", u.latestRelease.Version())
	return nil
}

// Rollback restores the previously backed up binary version.
func (u *Updater) Rollback() error {
	if !u.enabled {
		return newError(ErrCodeDisabled, u.disabledReason, nil)
	}

	if u.backupManager == nil || !u.backupManager.hasBackup() {
		return newError(ErrCodeNoBackup, "no backup available for rollback", nil)
	}

	if err := u.backupManager.restore(); err != nil {
		return newError(ErrCodeRollbackFailed, "failed to restore backup", err)
	}

	u.logger.Info("Rollback completed", "version", u.backupManager.backupVersion())
	return nil
}

func (u *Updater) attemptRollback() {
	if u.backupManager == nil || !u.backupManager.hasBackup() {
		u.logger.Error("No backup available for automatic rollback")
		return
	}

	if err := u.backupManager.restore(); err != nil {
		u.logger.Error("Failed to restore backup", "error", err)
		return
	}

	u.logger.Info("Automatic rollback completed")
}
