package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vbonduro/smartbite/internal/chat"
	"github.com/vbonduro/smartbite/internal/domain"
	"github.com/vbonduro/smartbite/internal/logging"
	"github.com/vbonduro/smartbite/internal/photostore"
	"github.com/vbonduro/smartbite/internal/photostore/local"
)

const chatHelp = `Commands:
  /image PATH   send a photo of your ingredients
  /cart         view the shopping cart
  /clear        clear the shopping cart
  /quit         end the session
Anything else is sent as a recipe request.`

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with SmartBite in the terminal",
		Long:  "Runs a single chat session on stdin/stdout.\n\n" + chatHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Keep stdout for the conversation; logs go to LOG_FILE only.
			logger, cleanup, err := logging.NewToWriter(io.Discard, cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return err
			}
			defer cleanup()

			dir, err := os.MkdirTemp("", "smartbite-uploads-")
			if err != nil {
				return fmt.Errorf("failed to create upload directory: %w", err)
			}
			defer func() {
				if err := os.RemoveAll(dir); err != nil {
					logger.Error("failed to remove upload directory", "error", err)
				}
			}()
			uploads, err := local.NewLocalPhotoStore(dir)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			assistant, shutdownTelemetry, err := newAssistant(ctx, cfg, uploads, logger)
			if err != nil {
				return err
			}
			defer shutdownTelemetry()

			return runChat(ctx, assistant, uploads, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// runChat drives one session from in until /quit or end of input.
func runChat(ctx context.Context, assistant *chat.Assistant, uploads photostore.PhotoStore, in io.Reader, out io.Writer) error {
	console := chat.NewConsoleSender(out)
	sess := chat.NewSession(uuid.NewString(), console)

	if err := assistant.OnSessionStart(ctx, sess); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, chatHelp); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var err error
		switch {
		case line == "/quit":
			return assistant.OnSessionEnd(ctx, sess)
		case line == "/cart":
			err = pressAction(ctx, assistant, sess, console, out, chat.ActionViewCart)
		case line == "/clear":
			err = pressAction(ctx, assistant, sess, console, out, chat.ActionClearCart)
		case strings.HasPrefix(line, "/image "):
			var el domain.Element
			el, err = storeImage(ctx, uploads, sess.ID, strings.TrimSpace(strings.TrimPrefix(line, "/image ")))
			if err == nil {
				err = assistant.OnMessage(ctx, sess, domain.IncomingMessage{Elements: []domain.Element{el}})
			}
		default:
			err = assistant.OnMessage(ctx, sess, domain.IncomingMessage{Content: line})
		}
		if err != nil {
			if _, werr := fmt.Fprintf(out, "error: %v\n\n", err); werr != nil {
				return werr
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return assistant.OnSessionEnd(ctx, sess)
}

// pressAction fires a quick action if its control is still on screen. Like a
// button in the web chat, each quick action can be used once per session.
func pressAction(ctx context.Context, assistant *chat.Assistant, sess *chat.Session, console *chat.ConsoleSender, out io.Writer, name string) error {
	action, ok := console.Action(name)
	if !ok {
		_, err := fmt.Fprintf(out, "%s has already been used in this session\n\n", name)
		return err
	}
	return assistant.OnAction(ctx, sess, action)
}

func storeImage(ctx context.Context, uploads photostore.PhotoStore, sessionID, path string) (domain.Element, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Element{}, fmt.Errorf("failed to read image: %w", err)
	}
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.Element{}, fmt.Errorf("%s is not an image (%s)", path, mimeType)
	}
	key, err := uploads.Save(ctx, sessionID, mimeType, bytes.NewReader(data))
	if err != nil {
		return domain.Element{}, err
	}
	return domain.Element{Name: filepath.Base(path), Mime: mimeType, Path: key}, nil
}
