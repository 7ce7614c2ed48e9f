package models

// Stage: üretim hattındaki sabit 8 aşamadan biri
type Stage string

const (
	StageKesimhanede  Stage = "kesimhanede"
	StageBaski        Stage = "baski"
	StageNakis        Stage = "nakis"
	StageDikim        Stage = "dikim"
	StageIlikDugme    Stage = "ilik_dugme"
	StageYikamaBoyama Stage = "yikama_boyama"
	StageUtuAmbalaj   Stage = "utu_ambalaj"
	StageYuklendi     Stage = "yuklendi"
)

// StageOrder: aşamaların sabit sırası. İleri/geri geçişler hep bu liste
// üzerinden komşu aşamaya yapılır, atlama yok.
var StageOrder = []Stage{
	StageKesimhanede,
	StageBaski,
	StageNakis,
	StageDikim,
	StageIlikDugme,
	StageYikamaBoyama,
	StageUtuAmbalaj,
	StageYuklendi,
}

var stageLabels = map[Stage]string{
	StageKesimhanede:  "KESİMHANEDE",
	StageBaski:        "BASKIDA",
	StageNakis:        "NAKIŞTA",
	StageDikim:        "DİKİMDE",
	StageIlikDugme:    "İLİK-DÜĞME",
	StageYikamaBoyama: "YIKAMA-BOYAMA",
	StageUtuAmbalaj:   "ÜTÜ AMBALAJ",
	StageYuklendi:     "YÜKLENDİ",
}

func (s Stage) Valid() bool {
	return s.Index() >= 0
}

// Index: aşamanın sıradaki yeri, tanımsızsa -1
func (s Stage) Index() int {
	for i, st := range StageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Next: bir sonraki aşama; son aşamadaysa false
func (s Stage) Next() (Stage, bool) {
	i := s.Index()
	if i < 0 || i >= len(StageOrder)-1 {
		return "", false
	}
	return StageOrder[i+1], true
}

// Prev: bir önceki aşama; ilk aşamadaysa false
func (s Stage) Prev() (Stage, bool) {
	i := s.Index()
	if i <= 0 {
		return "", false
	}
	return StageOrder[i-1], true
}

// Terminal: sevkiyat tamamlandı mı
func (s Stage) Terminal() bool {
	return s == StageYuklendi
}

func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return "KESİM BEKLİYOR"
}
