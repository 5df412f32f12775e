package services

import (
	"context"
	"log"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"

	"github.com/halalhustle/gatekeeper/internal/models"
)

type SafeSearchResult struct {
	Adult    string
	Violence string
	Racy     string
	Spoof    string
	Medical  string
}

// DetectSafeSearch runs Vision SAFE_SEARCH_DETECTION on a public image URL
// (Discord attachment CDN URLs qualify). Uses Application Default
// Credentials.
func DetectSafeSearch(ctx context.Context, imageURL string) (*SafeSearchResult, error) {
	svc, err := vision.NewService(ctx, option.WithScopes(vision.CloudPlatformScope))
	if err != nil {
		return nil, err
	}

	req := &vision.AnnotateImageRequest{
		Image: &vision.Image{
			Source: &vision.ImageSource{ImageUri: imageURL},
		},
		Features: []*vision.Feature{
			{Type: "SAFE_SEARCH_DETECTION"},
		},
	}

	call := svc.Images.Annotate(&vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{req},
	})
	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Responses) == 0 {
		return &SafeSearchResult{}, nil
	}
	ss := resp.Responses[0].SafeSearchAnnotation
	if ss == nil {
		return &SafeSearchResult{}, nil
	}

	return &SafeSearchResult{
		Adult:    ss.Adult,
		Violence: ss.Violence,
		Racy:     ss.Racy,
		Spoof:    ss.Spoof,
		Medical:  ss.Medical,
	}, nil
}

func isUnsafeLikelyOrHigher(l string) bool {
	return l == "LIKELY" || l == "VERY_LIKELY"
}

func (r *SafeSearchResult) IsUnsafe() bool {
	return isUnsafeLikelyOrHigher(r.Adult) || isUnsafeLikelyOrHigher(r.Violence) || isUnsafeLikelyOrHigher(r.Racy)
}

// SafeSearchDetector classifies one image URL. DetectSafeSearch is the
// production implementation.
type SafeSearchDetector func(ctx context.Context, imageURL string) (*SafeSearchResult, error)

// AttachmentScanner deletes messages whose image attachments SafeSearch
// flags. It runs after the synchronous verdict, only for messages the
// engine judged clean, so the in-memory decision path never waits on the
// network.
type AttachmentScanner struct {
	actions *ModerationActions
	detect  SafeSearchDetector
}

// NewAttachmentScanner wires the scanner. detect may be nil, in which case
// Vision SafeSearch is used.
func NewAttachmentScanner(actions *ModerationActions, detect SafeSearchDetector) *AttachmentScanner {
	if detect == nil {
		detect = DetectSafeSearch
	}
	return &AttachmentScanner{actions: actions, detect: detect}
}

// Scan checks each attachment URL and deletes + warns on the first unsafe
// hit. Detection errors are logged and skipped (best-effort moderation).
func (s *AttachmentScanner) Scan(ctx context.Context, ref MessageRef, urls []string) {
	for _, u := range urls {
		res, err := s.detect(ctx, u)
		if err != nil {
			log.Printf("[safesearch] detect failed url=%s err=%v", u, err)
			continue
		}
		if res.IsUnsafe() {
			log.Printf("[safesearch] unsafe attachment message=%s adult=%s violence=%s racy=%s",
				ref.MessageID, res.Adult, res.Violence, res.Racy)
			s.actions.Apply(ref, Verdict{Action: models.DeleteAndWarn("posting unsafe images is not allowed")})
			return
		}
	}
}
