package cmd

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/config"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
)

// pullFlags holds flag values for the `laracheat pull` command.
type pullFlags struct {
	check   bool
	force   bool
	from    string
	timeout time.Duration
}

type pullFlagsKey struct{}

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the latest cheat sheet from upstream",
	Long: `Download the upstream cheat sheet and install it as the configured
source file.

The downloaded copy must parse cleanly before it replaces anything; a
malformed sheet is rejected and the installed file stays untouched. The
previous copy is saved to ~/.laracheat/backups/ first.`,
	Args: cobra.NoArgs,
	RunE: runPull,
}

func init() {
	var f pullFlags
	pullCmd.Flags().BoolVar(&f.check, "check", false, "Check for changes but do not install")
	pullCmd.Flags().BoolVar(&f.force, "force", false, "Install even if the sheet is unchanged")
	pullCmd.Flags().StringVar(&f.from, "from", "", "Upstream URL (default: upstream from config)")
	pullCmd.Flags().DurationVar(&f.timeout, "timeout", 30*time.Second, "Overall timeout for network operations")
	pullCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		cmd.SetContext(context.WithValue(cmd.Context(), pullFlagsKey{}, f))
		return nil
	}
	rootCmd.AddCommand(pullCmd)
}

// runPull implements the `laracheat pull` command.
func runPull(cmd *cobra.Command, _ []string) error {
	f, ok := cmd.Context().Value(pullFlagsKey{}).(pullFlags)
	if !ok {
		return fmt.Errorf("internal error: pull flags missing")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	upstream := f.from
	if upstream == "" {
		upstream = cfg.Upstream
	}
	if upstream == "" {
		return fmt.Errorf("no upstream URL configured\nSet 'upstream' in ~/.laracheat/laracheat.yaml or pass --from.")
	}
	dest := cfg.Source
	if dest == "" || dest == "-" {
		return fmt.Errorf("configured source %q is not an installable file", dest)
	}

	_, unlock, err := acquirePullLock(f.timeout)
	if err != nil {
		return err
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
	defer cancel()

	printInfo("", fmt.Sprintf("pulling %s", upstream))
	data, err := fetchSheet(ctx, upstream)
	if err != nil {
		return err
	}

	// The downloaded copy must parse before it may replace anything.
	d, err := doc.Parse(bytes.NewReader(data), upstream)
	if err != nil {
		return fmt.Errorf("refusing to install malformed sheet: %w", err)
	}

	if prev, err := fileSHA256Hex(dest); err == nil && prev == sha256Hex(data) && !f.force {
		printOK("", fmt.Sprintf("already up to date: %s", dest))
		return nil
	}

	if f.check {
		printInfo("", fmt.Sprintf("update available: %s, %d sections, %d snippets",
			humanBytes(int64(len(data))), len(d.Sections), d.SnippetCount()))
		return nil
	}

	backup, err := backupExisting(dest)
	if err != nil {
		return err
	}
	if backup != "" {
		printInfo("", fmt.Sprintf("previous sheet saved to %s", backup))
	}

	if err := installSheet(dest, data); err != nil {
		return err
	}
	printOK("", fmt.Sprintf("pulled to %s (%s, %d sections, %d snippets)",
		dest, humanBytes(int64(len(data))), len(d.Sections), d.SnippetCount()))
	return nil
}

// fetchSheet downloads the sheet at url and returns its raw bytes.
func fetchSheet(ctx context.Context, url string) ([]byte, error) {
	client := &http.Client{}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "laracheat")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))
		return nil, fmt.Errorf("download failed: %s\n%s", resp.Status, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download read failed: %w", err)
	}
	return data, nil
}

// backupExisting copies dest into ~/.laracheat/backups/ before it is
// replaced. A missing dest is not an error; the returned path is empty.
func backupExisting(dest string) (string, error) {
	if _, err := os.Stat(dest); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("cannot stat %s: %w", dest, err)
	}

	dir, err := config.LaracheatDir()
	if err != nil {
		return "", err
	}
	backupDir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create backup dir %s: %w", backupDir, err)
	}

	backup := filepath.Join(backupDir, backupName(dest, time.Now()))
	if err := copyFile(dest, backup, 0o644); err != nil {
		return "", fmt.Errorf("cannot back up %s: %w", dest, err)
	}
	return backup, nil
}

// backupName returns the timestamped backup filename for path, e.g.
// laravel.md becomes laravel_20260825143000.md.
func backupName(path string, now time.Time) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return fmt.Sprintf("%s_%s%s", stem, now.Format("20060102150405"), ext)
}

// installSheet writes data next to dest and swaps it in with a rename, so
// readers never observe a half-written sheet.
func installSheet(dest string, data []byte) error {
	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	tmp := dest + ".new"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("cannot replace %s: %w", dest, err)
	}
	return nil
}

// copyFile copies src to dst with mode, overwriting dst if it exists.
func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return nil
}

// sha256Hex returns the SHA256 of data as lowercase hex.
func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// fileSHA256Hex returns the SHA256 checksum of a file as lowercase hex.
func fileSHA256Hex(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// humanBytes formats a byte count in a human-friendly binary unit.
func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	prefix := "KMGTPE"[exp]
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), prefix)
}

// acquirePullLock obtains the per-user pull lock so concurrent pulls
// cannot interleave backups and installs.
func acquirePullLock(timeout time.Duration) (*flock.Flock, func(), error) {
	dir, err := config.LaracheatDir()
	if err != nil {
		return nil, func() {}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, func() {}, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	lockPath := filepath.Join(dir, "pull.lock")

	l := flock.New(lockPath)
	deadline := time.Now().Add(timeout)
	for {
		locked, err := l.TryLock()
		if err != nil {
			return nil, func() {}, fmt.Errorf("cannot acquire pull lock: %w", err)
		}
		if locked {
			return l, func() { _ = l.Unlock() }, nil
		}
		if time.Now().After(deadline) {
			return nil, func() {}, fmt.Errorf("another pull is in progress (lock: %s)", lockPath)
		}
		time.Sleep(200 * time.Millisecond)
	}
}
