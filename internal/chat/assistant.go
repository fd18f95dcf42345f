package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vbonduro/smartbite/internal/detect"
	"github.com/vbonduro/smartbite/internal/domain"
	"github.com/vbonduro/smartbite/internal/recipe"
	"github.com/vbonduro/smartbite/internal/stockimage"
	"github.com/vbonduro/smartbite/internal/telemetry"
)

// ErrUnknownAction is returned by OnAction for names other than the two
// quick actions.
var ErrUnknownAction = errors.New("unknown action")

// ImageSource opens uploaded attachments by their storage path.
type ImageSource interface {
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
}

// StockImages resolves a dish photo URL for a query. The bool reports whether
// the image should be shown.
type StockImages interface {
	Resolve(ctx context.Context, query string) (string, bool)
}

type Assistant struct {
	detector  detect.Detector
	generator recipe.Generator
	images    StockImages
	uploads   ImageSource
	telemetry *telemetry.Telemetry
	logger    *slog.Logger
}

func NewAssistant(
	detector detect.Detector,
	generator recipe.Generator,
	images StockImages,
	uploads ImageSource,
	tel *telemetry.Telemetry,
	logger *slog.Logger,
) *Assistant {
	if tel == nil {
		tel = telemetry.Noop()
	}
	return &Assistant{
		detector:  detector,
		generator: generator,
		images:    images,
		uploads:   uploads,
		telemetry: tel,
		logger:    logger,
	}
}

// OnSessionStart clears the session cart, greets the user and offers the
// quick actions.
func (a *Assistant) OnSessionStart(ctx context.Context, s *Session) error {
	s.Cart.Clear()
	a.telemetry.Sessions.Add(ctx, 1)
	a.logger.Info("session started", "session_id", s.ID)

	if _, err := a.send(ctx, s, welcomeText); err != nil {
		return err
	}
	return a.sendMessage(ctx, s, &domain.Message{
		Content: quickActionsText,
		Actions: QuickActions(),
	})
}

// OnMessage runs the image flow on the first image attachment, or the text
// flow when there is none. Further images are ignored.
func (a *Assistant) OnMessage(ctx context.Context, s *Session, in domain.IncomingMessage) error {
	for _, el := range in.Elements {
		if el.IsImage() {
			a.logger.Info("image message received", "session_id", s.ID, "path", el.Path, "mime_type", el.Mime)
			return a.processImage(ctx, s, el)
		}
	}
	a.logger.Info("text message received", "session_id", s.ID, "chars", len(in.Content))
	return a.processText(ctx, s, in.Content)
}

// OnAction handles a quick-action press and retires the pressed control.
func (a *Assistant) OnAction(ctx context.Context, s *Session, action domain.Action) error {
	switch action.Name {
	case ActionViewCart:
		content := cartEmptyText
		if !s.Cart.IsEmpty() {
			content = s.Cart.Numbered(cartViewHeader)
		}
		if _, err := a.send(ctx, s, content); err != nil {
			return err
		}
	case ActionClearCart:
		s.Cart.Clear()
		if _, err := a.send(ctx, s, cartClearedText); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action.Name)
	}

	if err := s.out.RemoveAction(ctx, action); err != nil {
		return fmt.Errorf("failed to remove action: %w", err)
	}
	return nil
}

// OnSessionEnd shows the final shopping list when the cart has items. The
// cart is left as it is.
func (a *Assistant) OnSessionEnd(ctx context.Context, s *Session) error {
	a.logger.Info("session ended", "session_id", s.ID, "cart_items", s.Cart.Len())
	if s.Cart.IsEmpty() {
		return nil
	}
	_, err := a.send(ctx, s, s.Cart.Bulleted(finalListHeader))
	return err
}

func (a *Assistant) processText(ctx context.Context, s *Session, text string) error {
	placeholder, err := a.send(ctx, s, "")
	if err != nil {
		return err
	}

	reply := a.suggest(ctx, s, text, nil)

	placeholder.Content = reply.Display()
	if err := a.update(ctx, s, placeholder); err != nil {
		return err
	}
	return a.sendCartUpdate(ctx, s)
}

func (a *Assistant) processImage(ctx context.Context, s *Session, el domain.Element) error {
	if _, err := a.send(ctx, s, detectingText); err != nil {
		return err
	}

	if err := a.recipeFromImage(ctx, s, el); err != nil {
		a.logger.Error("image processing failed", "session_id", s.ID, "path", el.Path, "error", err)
		if _, serr := a.send(ctx, s, ImageErrorPrefix+err.Error()); serr != nil {
			return serr
		}
	}
	return nil
}

func (a *Assistant) recipeFromImage(ctx context.Context, s *Session, el domain.Element) error {
	labels, err := a.detectLabels(ctx, el)
	if err != nil {
		return err
	}
	if len(labels) == 0 {
		_, err := a.send(ctx, s, noIngredientText)
		return err
	}

	if _, err := a.send(ctx, s, fmt.Sprintf(detectedFormat, len(labels), strings.Join(labels, ", "))); err != nil {
		return err
	}

	placeholder, err := a.send(ctx, s, generatingText)
	if err != nil {
		return err
	}

	reply := a.suggest(ctx, s, ImageRequest, labels)

	placeholder.Content = recipeHeader + reply.Display()
	if err := a.update(ctx, s, placeholder); err != nil {
		return err
	}

	query := stockimage.FallbackQuery
	if len(labels) > 0 {
		query = labels[0]
	}
	dish := &domain.Message{Content: suggestedDish}
	if imageURL, ok := a.images.Resolve(ctx, query); ok {
		dish.Elements = []domain.Element{{Name: recipeImageName, URL: imageURL, Display: "inline"}}
	}
	if err := a.sendMessage(ctx, s, dish); err != nil {
		return err
	}

	return a.sendCartUpdate(ctx, s)
}

// detectLabels loads the attachment and returns its unique ingredient labels.
// An empty slice means the detector found nothing.
func (a *Assistant) detectLabels(ctx context.Context, el domain.Element) ([]string, error) {
	rc, storedMime, err := a.uploads.Get(ctx, el.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() {
		if err := rc.Close(); err != nil {
			a.logger.Error("failed to close image", "path", el.Path, "error", err)
		}
	}()

	mimeType := storedMime
	if el.Mime != "" {
		mimeType = el.Mime
	}

	ctx, span := a.telemetry.Tracer.Start(ctx, "detect", trace.WithAttributes(attribute.String("mime_type", mimeType)))
	defer span.End()

	res, err := a.detector.Detect(ctx, rc, mimeType)
	a.telemetry.Detections.Add(ctx, 1, telemetry.Outcome(err))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to detect ingredients: %w", err)
	}

	if res.Empty() {
		a.logger.Info("no ingredients detected")
		return nil, nil
	}

	labels := res.Labels()
	span.SetAttributes(attribute.Int("boxes", len(res.Boxes)), attribute.Int("labels", len(labels)))
	a.logger.Info("ingredients detected", "boxes", len(res.Boxes), "labels", labels)
	return labels, nil
}

func (a *Assistant) suggest(ctx context.Context, s *Session, text string, ingredients []string) recipe.Reply {
	ctx, span := a.telemetry.Tracer.Start(ctx, "generate", trace.WithAttributes(attribute.Int("ingredients", len(ingredients))))
	defer span.End()

	reply := recipe.Suggest(ctx, a.generator, text, ingredients)
	a.telemetry.Generations.Add(ctx, 1, telemetry.Outcome(reply.Err))
	if !reply.OK() {
		span.SetStatus(codes.Error, reply.Err.Error())
		a.logger.Error("recipe generation failed", "session_id", s.ID, "error", reply.Err)
	}
	return reply
}

func (a *Assistant) sendCartUpdate(ctx context.Context, s *Session) error {
	if s.Cart.IsEmpty() {
		return nil
	}
	_, err := a.send(ctx, s, s.Cart.Bulleted(cartUpdatedHeader))
	return err
}

func (a *Assistant) send(ctx context.Context, s *Session, content string) (*domain.Message, error) {
	msg := &domain.Message{Content: content}
	if err := a.sendMessage(ctx, s, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

func (a *Assistant) sendMessage(ctx context.Context, s *Session, msg *domain.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Author == "" {
		msg.Author = domain.AssistantAuthor
	}
	if err := s.out.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

func (a *Assistant) update(ctx context.Context, s *Session, msg *domain.Message) error {
	if err := s.out.Update(ctx, msg); err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	return nil
}
