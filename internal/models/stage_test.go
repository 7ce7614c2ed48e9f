package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageOrder(t *testing.T) {
	require.Len(t, StageOrder, 8)
	assert.Equal(t, StageKesimhanede, StageOrder[0])
	assert.Equal(t, StageYuklendi, StageOrder[len(StageOrder)-1])
}

func TestStageNextPrevAdjacency(t *testing.T) {
	// İleri-geri gezinti her zaman komşu aşamalar arasında kalmalı
	for i, s := range StageOrder {
		next, ok := s.Next()
		if i == len(StageOrder)-1 {
			assert.False(t, ok, "son aşamadan ileri gidilememeli")
		} else {
			require.True(t, ok)
			assert.Equal(t, StageOrder[i+1], next)
		}

		prev, ok := s.Prev()
		if i == 0 {
			assert.False(t, ok, "ilk aşamadan geri dönülememeli")
		} else {
			require.True(t, ok)
			assert.Equal(t, StageOrder[i-1], prev)
		}
	}
}

func TestStageTerminal(t *testing.T) {
	for _, s := range StageOrder {
		assert.Equal(t, s == StageYuklendi, s.Terminal())
	}
}

func TestStageUnknown(t *testing.T) {
	var s Stage = "paketleme"
	assert.False(t, s.Valid())
	assert.Equal(t, -1, s.Index())

	_, ok := s.Next()
	assert.False(t, ok)

	assert.Equal(t, "KESİM BEKLİYOR", s.Label())
}

func TestStageLabels(t *testing.T) {
	assert.Equal(t, "KESİMHANEDE", StageKesimhanede.Label())
	assert.Equal(t, "İLİK-DÜĞME", StageIlikDugme.Label())
	assert.Equal(t, "YÜKLENDİ", StageYuklendi.Label())
}
