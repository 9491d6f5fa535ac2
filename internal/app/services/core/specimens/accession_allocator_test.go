package specimens

import (
	"context"
	"fmt"
	"labtrail-service/internal/app/models"
	"labtrail-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func todayPrefix() string {
	return fmt.Sprintf("BL-%s-", time.Now().Format("20060102"))
}

func seedSpecimenWithCode(repo *fakeSpecimenRepository, id, code string) {
	repo.specimens[id] = models.Specimen{ID: id, AccessionCode: code}
}

func TestAccessionAllocatorFirstCodeOfTheDay(t *testing.T) {
	repo := newFakeSpecimenRepository()
	allocator := NewAccessionAllocator(repo, "BL", 5, zap.NewNop())

	code, err := allocator.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, todayPrefix()+"0001", code)
}

func TestAccessionAllocatorContinuesSequence(t *testing.T) {
	repo := newFakeSpecimenRepository()
	seedSpecimenWithCode(repo, "s1", todayPrefix()+"0007")
	allocator := NewAccessionAllocator(repo, "BL", 5, zap.NewNop())

	code, err := allocator.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, todayPrefix()+"0008", code)
}

func TestAccessionAllocatorSkipsTakenCandidates(t *testing.T) {
	repo := newFakeSpecimenRepository()
	// Invisible to the latest-code lookup, so only the existence re-check
	// can steer the allocator past it.
	repo.taken[todayPrefix()+"0001"] = true
	allocator := NewAccessionAllocator(repo, "BL", 5, zap.NewNop())

	code, err := allocator.Allocate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, todayPrefix()+"0002", code)
}

func TestAccessionAllocatorExhaustedDay(t *testing.T) {
	repo := newFakeSpecimenRepository()
	seedSpecimenWithCode(repo, "s1", todayPrefix()+"9999")
	allocator := NewAccessionAllocator(repo, "BL", 5, zap.NewNop())

	_, err := allocator.Allocate(context.Background())
	require.Error(t, err)

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, exceptions.KindExhausted, customErr.Kind)
}

func TestAccessionAllocatorConcurrentRegistrationsNeverDuplicate(t *testing.T) {
	repo := newFakeSpecimenRepository()
	allocator := NewAccessionAllocator(repo, "BL", 5, zap.NewNop())

	const workers = 2
	const perWorker = 10

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				// Allocate-then-insert mirrors registration; losing the
				// insert race re-allocates until the commit sticks.
				for {
					code, err := allocator.Allocate(context.Background())
					if err != nil {
						continue
					}
					if _, err := repo.CreateSpecimen(context.Background(), &models.Specimen{
						AccessionCode: code,
						Status:        models.SpecimenStatusCollected,
					}); err == nil {
						break
					}
				}
			}
		}()
	}
	wg.Wait()

	committed := make(map[string]bool)
	for _, specimen := range repo.specimens {
		assert.False(t, committed[specimen.AccessionCode], "accession code %s committed twice", specimen.AccessionCode)
		committed[specimen.AccessionCode] = true
	}
	assert.Len(t, repo.specimens, workers*perWorker)
}

func TestAccessionAllocatorGivesUpAfterMaxAttempts(t *testing.T) {
	repo := newFakeSpecimenRepository()
	repo.taken[todayPrefix()+"0001"] = true
	repo.taken[todayPrefix()+"0002"] = true
	allocator := NewAccessionAllocator(repo, "BL", 2, zap.NewNop())

	_, err := allocator.Allocate(context.Background())
	require.Error(t, err)

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, exceptions.KindExhausted, customErr.Kind)
}
