package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
	"github.com/daybrief/daybrief/models"
)

const poemBaseURL = "https://v2.jinrishici.com"

const defaultPoem = `《苦笋》
赏花归去马如飞,
去马如飞酒力微,
酒力微醒时已暮,
醒时已暮赏花归。

—— 宋·苏轼`

type Poem struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
}

func NewPoem(logger *slog.Logger, client *http.Client) *Poem {
	return &Poem{
		logger:  logger,
		client:  client,
		baseURL: poemBaseURL,
	}
}

func (s *Poem) Name() enums.Source { return enums.SourcePoem }

// Fetch never fails: any problem with the upstream feed yields the default
// poem instead.
func (s *Poem) Fetch(ctx context.Context) (digest.Record, error) {
	poem, err := s.fetchPoem(ctx)
	if err != nil {
		s.logger.Warn("poem: falling back to default", "error", truncateError(err))
		return models.PoemRecord{Text: defaultPoem}, nil
	}
	return models.PoemRecord{Text: poem}, nil
}

func (s *Poem) fetchPoem(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/one.json", nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var result models.PoemResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	origin := result.Data.Origin
	if origin.Title == "" || origin.Author == "" || len(origin.Content) == 0 {
		return "", fmt.Errorf("incomplete poem payload")
	}

	return fmt.Sprintf("《%s》\n%s\n\n—— %s·%s",
		origin.Title, strings.Join(origin.Content, "\n"), origin.Dynasty, origin.Author), nil
}
