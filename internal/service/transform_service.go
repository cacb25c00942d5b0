package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"hash/crc32"
	"image/png"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Pinank23/CODECRAFT-CS-02/internal/analyzer"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/cipher"
	apperrors "github.com/Pinank23/CODECRAFT-CS-02/internal/errors"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/logger"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/pixel"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/repository"
	"github.com/Pinank23/CODECRAFT-CS-02/internal/storage"
	"github.com/Pinank23/CODECRAFT-CS-02/pkg/models"
	"github.com/Pinank23/CODECRAFT-CS-02/pkg/validation"
)

// TransformService is the orchestration surface over the analyzer and the
// transform engine: it fetches, validates, transforms, records history and
// optionally persists results. The core packages underneath stay pure.
type TransformService interface {
	Analyze(ctx context.Context, imageURL string, baseKey int) (*models.AnalyzeResponse, error)
	Transform(ctx context.Context, imageURL string, key int, method string, decrypt bool) (*models.TransformResponse, error)
	Batch(ctx context.Context, req models.BatchRequest) (*models.BatchResponse, error)
	History(ctx context.Context) ([]models.HistoryEntry, error)
	ClearHistory(ctx context.Context) error
	Report(ctx context.Context, recordID string) (*models.OperationReport, error)
}

type transformService struct {
	fetcher      storage.ImageFetcher
	results      storage.ResultStore
	history      repository.HistoryRepository
	urlValidator *validation.URLValidator
	batchWorkers int
}

// NewTransformService wires the orchestration layer.
func NewTransformService(
	fetcher storage.ImageFetcher,
	results storage.ResultStore,
	history repository.HistoryRepository,
	batchWorkers int,
) TransformService {
	return &transformService{
		fetcher:      fetcher,
		results:      results,
		history:      history,
		urlValidator: validation.NewURLValidator(),
		batchWorkers: batchWorkers,
	}
}

// Analyze fetches an image, computes its statistics and returns the
// advisory recommendation plus a derived smart key. A zero base key asks
// the service to draw one uniformly from [1,255].
func (s *transformService) Analyze(ctx context.Context, imageURL string, baseKey int) (*models.AnalyzeResponse, error) {
	start := time.Now()

	if err := s.urlValidator.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}
	if baseKey == 0 {
		baseKey = rand.Intn(validation.MaxKey) + 1
	}
	if err := validation.ValidateKey(baseKey); err != nil {
		return nil, err
	}

	buf, err := s.fetchBuffer(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	result, err := analyzer.Analyze(buf)
	if err != nil {
		return nil, err
	}

	return &models.AnalyzeResponse{
		ImageURL:          imageURL,
		Analysis:          result,
		RecommendedMethod: analyzer.RecommendMethod(result),
		BaseKey:           baseKey,
		SmartKey:          analyzer.DeriveKey(result, baseKey),
		ProcessingTimeSec: time.Since(start).Seconds(),
	}, nil
}

// Transform runs one forward or backward transform end-to-end and records
// it in the operation history.
func (s *transformService) Transform(ctx context.Context, imageURL string, key int, method string, decrypt bool) (*models.TransformResponse, error) {
	return s.transformOne(ctx, imageURL, key, method, decrypt, true)
}

func (s *transformService) transformOne(ctx context.Context, imageURL string, key int, methodName string, decrypt, record bool) (*models.TransformResponse, error) {
	start := time.Now()

	if err := s.urlValidator.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}
	if err := validation.ValidateKey(key); err != nil {
		return nil, err
	}
	method, err := models.ParseMethod(methodName)
	if err != nil {
		return nil, apperrors.NewUnknownMethodError(methodName)
	}

	buf, err := s.fetchBuffer(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	var out *pixel.Buffer
	if decrypt {
		out, err = cipher.Backward(buf, key, method)
	} else {
		out, err = cipher.Forward(buf, key, method)
	}
	if err != nil {
		return nil, err
	}

	encoded, err := encodePNG(out)
	if err != nil {
		return nil, apperrors.NewProcessingError("failed to encode result", err)
	}

	resp := &models.TransformResponse{
		ImageURL:          imageURL,
		Method:            method,
		Key:               key,
		KeyStrength:       validation.KeyStrength(key),
		Width:             out.Width,
		Height:            out.Height,
		Channels:          out.Channels,
		ResultPNG:         base64.StdEncoding.EncodeToString(encoded),
		ProcessingTimeSec: time.Since(start).Seconds(),
	}

	if record {
		resp.RecordID, err = s.record(ctx, out, method, key, decrypt)
		if err != nil {
			return nil, err
		}
	}

	if s.results != nil && s.results.Enabled() {
		name := resp.RecordID
		if name == "" {
			// Batch items carry no record ID. Concurrent workers can hit the
			// same clock reading, so the URL hash keeps names distinct.
			name = fmt.Sprintf("batch-%08x-%d", crc32.ChecksumIEEE([]byte(imageURL)), time.Now().UnixNano())
		}
		blob, err := s.results.SaveResult(ctx, name+".png", encoded)
		if err != nil {
			// Persistence is best effort; the transform itself succeeded.
			logger.WithError(err).WithFields(logrus.Fields{
				"url":    imageURL,
				"method": method,
			}).Warn("Failed to persist result to blob storage")
		} else {
			resp.OutputBlob = blob
		}
	}

	logger.WithFields(logrus.Fields{
		"url":      imageURL,
		"method":   method,
		"decrypt":  decrypt,
		"width":    out.Width,
		"height":   out.Height,
		"duration": resp.ProcessingTimeSec,
	}).Info("Transform completed")

	return resp, nil
}

// Batch fans one task per URL out over the worker pool. Cancellation is
// coarse: once the context is done the remaining queue is abandoned, but
// in-flight transforms run to completion since each is short and atomic.
func (s *transformService) Batch(ctx context.Context, req models.BatchRequest) (*models.BatchResponse, error) {
	start := time.Now()

	if err := validation.ValidateKey(req.Key); err != nil {
		return nil, err
	}
	if _, err := models.ParseMethod(req.Method); err != nil {
		return nil, apperrors.NewUnknownMethodError(req.Method)
	}

	pool := NewWorkerPool(s.batchWorkers)
	pool.Start()
	defer pool.Close()

	items := make([]models.BatchItemResult, len(req.URLs))
	var mu sync.Mutex

	for i, u := range req.URLs {
		if ctx.Err() != nil {
			mu.Lock()
			items[i] = models.BatchItemResult{URL: u, Error: ctx.Err().Error()}
			mu.Unlock()
			continue
		}

		idx, url := i, u
		pool.Submit(func() {
			resp, err := s.transformOne(ctx, url, req.Key, req.Method, req.Decrypt, false)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				items[idx] = models.BatchItemResult{URL: url, Error: err.Error()}
				return
			}
			items[idx] = models.BatchItemResult{URL: url, OutputBlob: resp.OutputBlob}
		})
	}
	pool.Wait()

	out := &models.BatchResponse{
		Total:             len(items),
		Items:             items,
		ProcessingTimeSec: time.Since(start).Seconds(),
	}
	for _, item := range items {
		if item.Error == "" {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}

	logger.WithFields(logrus.Fields{
		"total":     out.Total,
		"succeeded": out.Succeeded,
		"failed":    out.Failed,
	}).Info("Batch completed")

	return out, nil
}

// History returns the operation log, newest first.
func (s *transformService) History(ctx context.Context) ([]models.HistoryEntry, error) {
	records, err := s.history.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list history", err)
	}

	entries := make([]models.HistoryEntry, len(records))
	for i, rec := range records {
		entries[i] = models.HistoryEntry{
			ID:        rec.ID,
			Timestamp: rec.Timestamp,
			Label:     rec.Label,
			Method:    rec.Method,
			Key:       rec.Key,
			Width:     rec.Snapshot.Width,
			Height:    rec.Snapshot.Height,
			Channels:  rec.Snapshot.Channels,
		}
		if len(rec.ThumbnailPNG) > 0 {
			entries[i].ThumbnailPNG = base64.StdEncoding.EncodeToString(rec.ThumbnailPNG)
		}
	}
	return entries, nil
}

// ClearHistory drops all operation records.
func (s *transformService) ClearHistory(ctx context.Context) error {
	return s.history.Clear(ctx)
}

// Report builds the structured report for a recorded operation. The
// analysis section describes the recorded result buffer.
func (s *transformService) Report(ctx context.Context, recordID string) (*models.OperationReport, error) {
	rec, err := s.history.Get(ctx, recordID)
	if err != nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("record %q", recordID), err)
	}

	report := &models.OperationReport{
		RecordID:    rec.ID,
		Timestamp:   rec.Timestamp,
		Label:       rec.Label,
		Method:      rec.Method,
		Key:         rec.Key,
		KeyStrength: validation.KeyStrength(rec.Key),
		Width:       rec.Snapshot.Width,
		Height:      rec.Snapshot.Height,
		Channels:    rec.Snapshot.Channels,
	}

	if result, err := analyzer.Analyze(rec.Snapshot); err == nil {
		report.Analysis = &result
	}

	return report, nil
}

func (s *transformService) fetchBuffer(ctx context.Context, imageURL string) (*pixel.Buffer, error) {
	img, err := s.fetcher.FetchImage(ctx, imageURL)
	if err != nil {
		return nil, apperrors.NewNetworkError("failed to fetch image", err)
	}
	return pixel.FromImage(img), nil
}

func (s *transformService) record(ctx context.Context, out *pixel.Buffer, method models.Method, key int, decrypt bool) (string, error) {
	label := fmt.Sprintf("Encrypted with %s", method)
	if decrypt {
		label = fmt.Sprintf("Decrypted with %s", method)
	}

	thumb, err := repository.Thumbnail(out)
	if err != nil {
		logger.WithError(err).Warn("Failed to render history thumbnail")
	}

	id, err := s.history.Append(ctx, repository.OperationRecord{
		Timestamp:    time.Now(),
		Label:        label,
		Method:       method,
		Key:          key,
		Snapshot:     out,
		ThumbnailPNG: thumb,
	})
	if err != nil {
		return "", apperrors.NewInternalError("failed to record operation", err)
	}
	return id, nil
}

func encodePNG(buf *pixel.Buffer) ([]byte, error) {
	var b bytes.Buffer
	if err := png.Encode(&b, buf.ToImage()); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
