package clone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/website-cloner/internal/llm"
	"github.com/jonathan/website-cloner/internal/store"
)

// systemPrompt is the fixed instruction sent with every clone request.
const systemPrompt = `You are an expert web developer specializing in creating accurate HTML clones of websites.
Your primary objective is to replicate the visual appearance of the provided website screenshot as precisely as possible. Every detail matters: layout, colors, font styles, spacing, element sizes, and component design.
The final output must be a single, complete, and valid HTML file. All CSS must be embedded within a <style> tag in the <head>, and any necessary JavaScript within a <script> tag just before </body>.
Do not include any external stylesheets, scripts, or frameworks unless their use is explicitly verifiable from the provided raw HTML content.
For images shown in the screenshot, use <img> tags and reference their original URLs if possible. If not, create a visually appropriate placeholder.`

// screenshotMediaType is the media type of captured screenshots.
const screenshotMediaType = "image/png"

// Builder assembles clone prompts from stored scrape records.
type Builder struct {
	store store.Repository
	// baseDir is the directory against which recorded public screenshot
	// paths are resolved to filesystem paths.
	baseDir string
}

// NewBuilder wires a Builder from the record store and the directory that
// public paths are served from.
func NewBuilder(repo store.Repository, baseDir string) *Builder {
	return &Builder{store: repo, baseDir: baseDir}
}

// Build looks up the record under id and assembles a deterministic
// multimodal prompt from it. It returns a *NotFoundError when the id was
// never scraped and an *InsufficientDataError when the record has neither
// markup nor a screenshot. A recorded screenshot whose file is missing or
// unreadable degrades to a text block rather than failing the request.
func (b *Builder) Build(ctx context.Context, id string) (*llm.Prompt, error) {
	rec, err := b.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &NotFoundError{ID: id}
	}
	if !rec.HasContent() {
		return nil, &InsufficientDataError{ID: id}
	}

	prompt := &llm.Prompt{System: systemPrompt}

	if rec.HTMLContent != nil {
		prompt.Blocks = append(prompt.Blocks, llm.TextBlock(fmt.Sprintf(
			"Here is the raw HTML content of the original website, provided as additional context. Analyze its structure but prioritize the visual outcome from the screenshot:\n\n```html\n%s\n```",
			*rec.HTMLContent,
		)))
	} else {
		prompt.Blocks = append(prompt.Blocks, llm.TextBlock(
			"No raw HTML content available. Please rely solely on the visual screenshot.",
		))
	}

	prompt.Blocks = append(prompt.Blocks, b.screenshotBlocks(rec)...)

	prompt.Blocks = append(prompt.Blocks, llm.TextBlock(
		"Please provide the complete HTML code for the cloned website, starting directly with `<!DOCTYPE html>`.",
	))

	return prompt, nil
}

// screenshotBlocks returns the image block plus its label, or a text block
// explaining why no image is attached.
func (b *Builder) screenshotBlocks(rec *store.Record) []llm.Block {
	if rec.ScreenshotPath == nil {
		return []llm.Block{llm.TextBlock("No screenshot available or file not found.")}
	}

	path := filepath.Join(b.baseDir, strings.TrimPrefix(*rec.ScreenshotPath, "/"))
	data, err := os.ReadFile(path)
	if err != nil {
		zap.L().Warn("recorded screenshot could not be read",
			zap.String("id", rec.ID),
			zap.String("path", path),
			zap.Error(err),
		)
		return []llm.Block{llm.TextBlock("Error loading screenshot.")}
	}

	return []llm.Block{
		llm.ImageBlock(screenshotMediaType, data),
		llm.TextBlock("Here is the visual screenshot of the website that you must replicate:"),
	}
}
