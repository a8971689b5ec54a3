package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bnema/venvctl/internal/domain"
	"github.com/bnema/venvctl/internal/ports"
	"go.uber.org/zap"
)

// exitCommandNotFound mirrors what an interactive shell reports for a
// command missing from every search path.
const exitCommandNotFound = 127

// RunOptions adjust a single command invocation.
type RunOptions struct {
	// DiscardOutput leaves stdout and stderr attached to the parent process
	// instead of capturing them into the result.
	DiscardOutput bool
	// Env entries are merged over the activated environment with the highest
	// precedence.
	Env map[string]string
	// Timeout bounds the child process; zero means no limit beyond the
	// caller's context.
	Timeout time.Duration
}

// Runner executes external commands inside an environment, provisioning it
// on demand. Command execution reproduces what interactive activation would
// do: the environment's executable directory is prepended to the search path
// and the active-environment marker variable is set, then the command is
// spawned directly with that assembled environment.
//
// The last-result slot is single-slot shared mutable state; concurrent
// workflows each need their own runner.
type Runner struct {
	store *Store
	log   *zap.Logger

	mu   sync.Mutex
	last *domain.ExecutionResult
}

var _ ports.CommandRunner = (*Runner)(nil)

// NewRunner returns a runner bound to one environment store. A nil logger
// disables logging.
func NewRunner(store *Store, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}

	return &Runner{store: store, log: log}
}

// Run executes command with args inside the environment using default
// options, capturing output.
func (r *Runner) Run(ctx context.Context, command string, args ...string) (domain.ExecutionResult, error) {
	return r.RunWith(ctx, RunOptions{}, command, args...)
}

// RunWith executes command with args inside the environment.
//
// A missing environment is provisioned once; if it is still absent afterward
// the call fails with an EnvironmentError wrapping ErrNotProvisioned. A
// missing activation marker fails fast with an EnvironmentError suggesting a
// flush. A non-zero exit or unresolvable command surfaces as a CommandError
// carrying the command line, exit code, and captured stderr. On success the
// result is returned and retained as the last result.
func (r *Runner) RunWith(ctx context.Context, opts RunOptions, command string, args ...string) (domain.ExecutionResult, error) {
	r.setLast(nil)

	if !r.store.Exists() {
		if err := r.store.Create(ctx, false); err != nil {
			return domain.ExecutionResult{}, err
		}
		if !r.store.Exists() {
			return domain.ExecutionResult{}, &domain.EnvironmentError{
				Path: r.store.Path(),
				Op:   "provision",
				Err:  domain.ErrNotProvisioned,
			}
		}
	}

	activate := r.store.Layout().ActivatePath(r.store.Path())
	if _, err := os.Stat(activate); err != nil {
		r.log.Error("activation marker missing",
			zap.String("path", activate),
			zap.Error(err))
		return domain.ExecutionResult{}, &domain.EnvironmentError{
			Path: r.store.Path(),
			Op:   "activate",
			Err:  fmt.Errorf("activation marker not found at %s, flush the environment to rebuild it", activate),
		}
	}

	line := commandLine(command, args)

	resolved, err := r.resolve(command)
	if err != nil {
		r.log.Error("command not found",
			zap.String("command", command),
			zap.Error(err))
		return domain.ExecutionResult{}, &domain.CommandError{
			CommandLine: line,
			ExitCode:    exitCommandNotFound,
			Err:         err,
		}
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	child := exec.CommandContext(ctx, resolved, args...)
	child.Env = r.environ(opts.Env)

	var stdout, stderr bytes.Buffer
	if opts.DiscardOutput {
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr
	} else {
		child.Stdout = &stdout
		child.Stderr = &stderr
	}

	start := time.Now()
	runErr := child.Run()

	result := domain.ExecutionResult{
		CommandLine: line,
		Stdout:      stdout.String(),
		Stderr:      stderr.String(),
		Duration:    time.Since(start),
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(runErr, &exitErr):
			result.ExitCode = exitErr.ExitCode()
			cause := runErr
			if ctxErr := ctx.Err(); ctxErr != nil {
				cause = fmt.Errorf("%w: %w", ctxErr, runErr)
			}
			r.log.Error("command failed",
				zap.String("command", line),
				zap.Int("exit_code", result.ExitCode),
				zap.String("stderr", strings.TrimSpace(result.Stderr)))
			return result, &domain.CommandError{
				CommandLine: line,
				ExitCode:    result.ExitCode,
				Stderr:      result.Stderr,
				Err:         cause,
			}
		default:
			// The spawn itself failed: the environment is broken, not the
			// command.
			r.log.Error("command spawn failed",
				zap.String("command", line),
				zap.Error(runErr))
			return result, &domain.EnvironmentError{
				Path: r.store.Path(),
				Op:   "run",
				Err:  runErr,
			}
		}
	}

	r.setLast(&result)
	r.log.Info("command executed",
		zap.String("command", line),
		zap.Duration("duration", result.Duration))

	return result, nil
}

// Result returns the most recently stored successful result. The second
// return value reports whether any command has completed yet.
func (r *Runner) Result() (domain.ExecutionResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last == nil {
		return domain.ExecutionResult{}, false
	}

	return *r.last, true
}

func (r *Runner) setLast(result *domain.ExecutionResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.last = result
}

// resolve locates command the way an activated shell would: bare names are
// looked up in the environment's executable directory first, then on the
// inherited search path. Names carrying a path separator pass through.
func (r *Runner) resolve(command string) (string, error) {
	if strings.ContainsAny(command, `/\`) {
		return command, nil
	}

	binDir := r.store.Layout().BinPath(r.store.Path())
	for _, candidate := range executableCandidates(binDir, command) {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return exec.LookPath(command)
}

func executableCandidates(binDir, command string) []string {
	candidates := []string{filepath.Join(binDir, command)}
	if runtime.GOOS == "windows" && filepath.Ext(command) == "" {
		candidates = append(candidates,
			filepath.Join(binDir, command+".exe"),
			filepath.Join(binDir, command+".bat"))
	}

	return candidates
}

// environ layers the environment's activation state onto the inherited
// process environment: the executable directory is prepended to PATH,
// VIRTUAL_ENV marks the active environment, and overrides win last.
func (r *Runner) environ(overrides map[string]string) []string {
	merged := map[string]string{}
	for _, entry := range os.Environ() {
		if key, value, ok := strings.Cut(entry, "="); ok {
			merged[key] = value
		}
	}

	root := r.store.Path()
	binDir := r.store.Layout().BinPath(root)

	merged["VIRTUAL_ENV"] = root
	if path, ok := merged["PATH"]; ok && path != "" {
		merged["PATH"] = binDir + string(os.PathListSeparator) + path
	} else {
		merged["PATH"] = binDir
	}

	for key, value := range overrides {
		merged[key] = value
	}

	env := make([]string, 0, len(merged))
	for key, value := range merged {
		env = append(env, key+"="+value)
	}
	sort.Strings(env)

	return env
}

func commandLine(command string, args []string) string {
	return strings.Join(append([]string{command}, args...), " ")
}
