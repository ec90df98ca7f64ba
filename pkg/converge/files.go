package converge

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
	"github.com/creachadair/atomicfile"

	"github.com/macropower/gradlepin/pkg/blockdoc"
	"github.com/macropower/gradlepin/pkg/dialect"
	"github.com/macropower/gradlepin/pkg/manifest"
	"github.com/macropower/gradlepin/pkg/patch"
	"github.com/macropower/gradlepin/pkg/pinerrors"
	"github.com/macropower/gradlepin/pkg/templates"
	"github.com/macropower/gradlepin/pkg/wrapper"
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

func (c *Converger) converge(ctx context.Context, logger *slog.Logger, project string, t Target) FileResult {
	res := FileResult{Project: project, Target: t}

	var err error

	switch t {
	case TargetApp:
		err = c.convergeScript(ctx, logger, &res, dialect.AppBuild, templates.App, c.Policy.AppDirectives)
	case TargetSettings:
		err = c.convergeScript(ctx, logger, &res, dialect.Settings, templates.Settings, c.Policy.SettingsDirectives)
	case TargetWrapper:
		err = c.convergeWrapper(ctx, &res)
	case TargetManifest:
		err = c.convergeManifest(ctx, &res)
	default:
		err = fmt.Errorf("%w: unknown target %q", pinerrors.ErrInvalidArguments, t)
	}

	if err != nil {
		res.Status = StatusFailed
		res.Err = err

		logger.Error("converge failed", slog.String("path", res.Path), slog.Any("err", err))

		return res
	}

	logger.Info(string(res.Status), slog.String("path", res.Path))

	return res
}

func (c *Converger) convergeScript(
	ctx context.Context,
	logger *slog.Logger,
	res *FileResult,
	candidates dialect.Candidates,
	templateID string,
	directives func(dialect.Dialect) []patch.Directive,
) error {
	det, err := dialect.Detect(res.Project, candidates)
	if err != nil {
		return err
	}

	if !det.Exists {
		// Match the dialect the rest of the project is written in.
		det.Dialect = projectDialect(res.Project)
		det.Path = filepath.Join(res.Project, candidates.For(det.Dialect))
	}

	res.Path = det.Path
	res.Dialect = det.Dialect.String()

	unlock := c.locks.Lock(det.Path)
	defer unlock()

	if !det.Exists {
		text, err := templates.Synthesize(det.Dialect, templateID)
		if err != nil {
			return err
		}

		logger.Debug("synthesizing from template",
			slog.String("path", det.Path),
			slog.String("template", templateID),
			slog.String("dialect", res.Dialect),
		)

		return c.create(ctx, res, text)
	}

	before, err := readFile(det.Path)
	if err != nil {
		return err
	}

	doc := blockdoc.Parse(before)
	if doc.Degraded() {
		logger.Warn("unbalanced braces, appending instead of editing", slog.String("path", det.Path))
	}

	out, result := patch.Apply(doc, det.Dialect, directives(det.Dialect))
	res.Outcomes = result.Outcomes
	res.Degraded = result.Degraded

	for _, o := range result.Outcomes {
		logger.Debug("directive applied",
			slog.String("directive", o.Directive.String()),
			slog.String("action", string(o.Action)),
		)
	}

	return c.update(ctx, res, before, out.String())
}

func (c *Converger) convergeWrapper(ctx context.Context, res *FileResult) error {
	res.Path = filepath.Join(res.Project, wrapper.File)

	url, err := c.Policy.WrapperURL()
	if err != nil {
		return err
	}

	unlock := c.locks.Lock(res.Path)
	defer unlock()

	before, err := readFile(res.Path)
	if errors.Is(err, fs.ErrNotExist) {
		if !c.Policy.Wrapper.CreateMissing {
			return fmt.Errorf("%w: %s", pinerrors.ErrMissingTarget, res.Path)
		}

		text, err := templates.Synthesize(dialect.Preferred, templates.Wrapper)
		if err != nil {
			return err
		}

		// The template pins a default release; apply the policy's.
		text, _ = wrapper.Patch(text, url)

		return c.create(ctx, res, text)
	}

	if err != nil {
		return err
	}

	after, _ := wrapper.Patch(before, url)

	return c.update(ctx, res, before, after)
}

func (c *Converger) convergeManifest(ctx context.Context, res *FileResult) error {
	res.Path = filepath.Join(res.Project, manifest.File)

	unlock := c.locks.Lock(res.Path)
	defer unlock()

	before, err := readFile(res.Path)
	if errors.Is(err, fs.ErrNotExist) {
		if !c.Policy.Manifest.CreateMissing {
			return fmt.Errorf("%w: %s", pinerrors.ErrMissingTarget, res.Path)
		}

		text, err := templates.Synthesize(dialect.Preferred, templates.Manifest)
		if err != nil {
			return err
		}

		return c.create(ctx, res, text)
	}

	if err != nil {
		return err
	}

	after, _, err := manifest.Patch(before)
	if err != nil {
		return err
	}

	return c.update(ctx, res, before, after)
}

// create writes a file that did not exist.
func (c *Converger) create(ctx context.Context, res *FileResult, text string) error {
	res.Status = StatusCreated

	if c.DryRun {
		res.Diff = c.diff(res, "", text)

		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", pinerrors.ErrWriteFile, err)
	}

	if err := os.MkdirAll(filepath.Dir(res.Path), dirMode); err != nil {
		return fmt.Errorf("%w: %w", pinerrors.ErrWriteFile, err)
	}

	return writeFile(res.Path, text)
}

// update writes after if it differs from before.
func (c *Converger) update(ctx context.Context, res *FileResult, before, after string) error {
	if before == after {
		res.Status = StatusUnchanged

		return nil
	}

	res.Status = StatusPatched

	if c.DryRun {
		res.Diff = c.diff(res, before, after)

		return nil
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", pinerrors.ErrWriteFile, err)
	}

	return writeFile(res.Path, after)
}

func (c *Converger) diff(res *FileResult, before, after string) string {
	label := res.Path
	if rel, err := filepath.Rel(res.Project, res.Path); err == nil {
		label = rel
	}

	return udiff.Unified("a/"+filepath.ToSlash(label), "b/"+filepath.ToSlash(label), before, after)
}

// projectDialect returns the dialect of the first existing settings, root or
// app script, or [dialect.Preferred].
func projectDialect(project string) dialect.Dialect {
	for _, c := range []dialect.Candidates{dialect.Settings, dialect.RootBuild, dialect.AppBuild} {
		det, err := dialect.Detect(project, c)
		if err == nil && det.Exists {
			return det.Dialect
		}
	}

	return dialect.Preferred
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", pinerrors.ErrReadFile, err)
	}

	return string(data), nil
}

func writeFile(path, text string) error {
	mode := os.FileMode(fileMode)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}

	f, err := atomicfile.New(path, mode)
	if err != nil {
		return fmt.Errorf("%w: %w", pinerrors.ErrWriteFile, err)
	}
	defer f.Cancel()

	if _, err := f.Write([]byte(text)); err != nil {
		return fmt.Errorf("%w: %w", pinerrors.ErrWriteFile, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", pinerrors.ErrWriteFile, err)
	}

	return nil
}
