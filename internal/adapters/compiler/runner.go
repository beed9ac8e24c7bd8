package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/spirit-dao/algebra-deploy/internal/domain/config"
	"github.com/spirit-dao/algebra-deploy/internal/usecase"
)

// DefaultBuildCommand compiles a Hardhat project
var DefaultBuildCommand = []string{"npx", "hardhat", "compile"}

// Runner runs the project's build command before deployment
type Runner struct {
	projectRoot string
	command     []string
	debug       bool
	out         io.Writer
	log         *slog.Logger
}

// NewRunner creates a compiler runner from runtime configuration
func NewRunner(cfg *config.RuntimeConfig, log *slog.Logger) *Runner {
	command := cfg.BuildCommand
	if len(command) == 0 {
		command = DefaultBuildCommand
	}
	return &Runner{
		projectRoot: cfg.ProjectRoot,
		command:     command,
		debug:       cfg.Debug,
		out:         os.Stdout,
		log:         log.With("component", "CompilerRunner"),
	}
}

// Compile runs the build command under a pty so the tool keeps its colored
// output. Output is streamed in debug mode and otherwise only shown on failure.
func (r *Runner) Compile(ctx context.Context) error {
	start := time.Now()
	r.log.Debug("running build", "command", strings.Join(r.command, " "), "dir", r.projectRoot)

	cmd := exec.CommandContext(ctx, r.command[0], r.command[1:]...)
	cmd.Dir = r.projectRoot
	cmd.Env = os.Environ()

	ptyFile, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start %s: %w", r.command[0], err)
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	var output bytes.Buffer
	var sink io.Writer = &output
	if r.debug {
		sink = io.MultiWriter(&output, r.out)
	}

	// Reading the pty master returns EIO once the child exits on Linux.
	if _, err := io.Copy(sink, ptyFile); err != nil && !errors.Is(err, syscall.EIO) {
		r.log.Debug("build output read ended", "error", err)
	}

	if err := cmd.Wait(); err != nil {
		r.log.Error("build failed", "error", err, "duration", time.Since(start))
		return fmt.Errorf("%s failed: %w\nOutput: %s", strings.Join(r.command, " "), err, output.String())
	}

	r.log.Debug("build completed", "duration", time.Since(start))
	return nil
}

// Ensure Runner implements ContractCompiler
var _ usecase.ContractCompiler = (*Runner)(nil)
