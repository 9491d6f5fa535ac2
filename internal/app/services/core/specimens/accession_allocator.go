package specimens

import (
	"context"
	"fmt"
	"labtrail-service/internal/app/contracts"
	"labtrail-service/internal/pkg/constvars"
	"labtrail-service/internal/pkg/exceptions"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// AccessionAllocator hands out day-scoped sequential accession codes in the
// form PREFIX-YYYYMMDD-NNNN. The existence re-check keeps most collisions out;
// the unique index on accessionCode catches the rest at insert time.
type AccessionAllocator struct {
	SpecimenRepository contracts.SpecimenRepository
	Prefix             string
	MaxAttempts        int
	Log                *zap.Logger
}

func NewAccessionAllocator(specimenRepository contracts.SpecimenRepository, prefix string, maxAttempts int, logger *zap.Logger) *AccessionAllocator {
	return &AccessionAllocator{
		SpecimenRepository: specimenRepository,
		Prefix:             prefix,
		MaxAttempts:        maxAttempts,
		Log:                logger,
	}
}

func (a *AccessionAllocator) Allocate(ctx context.Context) (string, error) {
	dayPrefix := fmt.Sprintf("%s-%s-", a.Prefix, time.Now().Format("20060102"))

	latest, err := a.SpecimenRepository.LatestAccessionCodeWithPrefix(ctx, dayPrefix)
	if err != nil {
		return "", err
	}

	counter := 1
	if latest != "" {
		sequence, err := strconv.Atoi(latest[len(dayPrefix):])
		if err != nil {
			return "", exceptions.ErrAccessionExhausted(err)
		}
		counter = sequence + 1
	}

	for attempt := 0; attempt < a.MaxAttempts; attempt++ {
		if counter > 9999 {
			a.Log.Warn("accession sequence exhausted for the day",
				zap.String(constvars.LoggingAccessionCodeKey, dayPrefix),
			)
			return "", exceptions.ErrAccessionExhausted(nil)
		}

		candidate := fmt.Sprintf("%s%04d", dayPrefix, counter)
		exists, err := a.SpecimenRepository.AccessionCodeExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}

		a.Log.Debug("accession candidate already taken, retrying",
			zap.String(constvars.LoggingAccessionCodeKey, candidate),
		)
		counter++
	}

	return "", exceptions.ErrAccessionExhausted(nil)
}
