package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"

	"github.com/daybrief/daybrief/digest"
	"github.com/daybrief/daybrief/enums"
	"github.com/daybrief/daybrief/models"
)

const (
	wereadBaseURL   = "https://i.weread.qq.com"
	wereadUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	wereadReferer   = "https://weread.qq.com/"

	shelfScanLimit = 20
)

type WeRead struct {
	logger  *slog.Logger
	client  *http.Client
	cookie  string
	baseURL string
}

func NewWeRead(logger *slog.Logger, client *http.Client, cookie string) *WeRead {
	return &WeRead{
		logger:  logger,
		client:  client,
		cookie:  cookie,
		baseURL: wereadBaseURL,
	}
}

func (s *WeRead) Name() enums.Source { return enums.SourceWeRead }

func (s *WeRead) Fetch(ctx context.Context) (digest.Record, error) {
	info, err := s.fetchReadInfo(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "weread: fetch read info (check cookie)")
	}

	record := models.WeReadRecord{
		YesterdayMinutes: info.YesterdayReadingTime / 60,
		WeeklyMinutes:    info.WeekReadingTime / 60,
		MonthlyMinutes:   info.MonthReadingTime / 60,
		TotalHours:       info.TotalReadingTime / 60 / 60,
		FinishedBooks:    info.FinishedBookCount,
	}

	// Shelf failure only costs the in-progress list.
	books, err := s.fetchShelf(ctx)
	if err != nil {
		s.logger.Warn("weread: fetch shelf failed", "error", truncateError(err))
	}
	if len(books) > shelfScanLimit {
		books = books[:shelfScanLimit]
	}
	for _, book := range books {
		if book.ReadingProgress <= 0 || book.ReadingProgress >= 100 {
			continue
		}
		record.CurrentBooks = append(record.CurrentBooks, models.WeReadBook{
			Title:    book.Title,
			Author:   book.Author,
			Progress: book.ReadingProgress,
		})
		if len(record.CurrentBooks) == 3 {
			break
		}
	}

	s.logger.Info("weread stats collected",
		"yesterday_minutes", record.YesterdayMinutes,
		"current_books", len(record.CurrentBooks))

	return record, nil
}

// fetchReadInfo tries the readinfo endpoint and falls back to readdata/detail,
// which serves the same fields for some account types.
func (s *WeRead) fetchReadInfo(ctx context.Context) (*models.WeReadReadInfo, error) {
	var info models.WeReadReadInfo
	err := s.get(ctx, s.baseURL+"/book/readinfo", &info)
	if err == nil {
		return &info, nil
	}
	s.logger.Debug("weread: readinfo failed, trying readdata/detail", "error", truncateError(err))

	if err := s.get(ctx, s.baseURL+"/readdata/detail", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (s *WeRead) fetchShelf(ctx context.Context) ([]models.WeReadShelfBook, error) {
	var shelf models.WeReadShelf
	if err := s.get(ctx, s.baseURL+"/shelf/sync?synckey=0&lectureSynckey=0", &shelf); err != nil {
		return nil, err
	}
	return shelf.Books, nil
}

func (s *WeRead) get(ctx context.Context, url string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cookie", s.cookie)
	req.Header.Set("User-Agent", wereadUserAgent)
	req.Header.Set("Referer", wereadReferer)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}
