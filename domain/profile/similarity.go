package profile

import (
	"math"
)

// Similarity scores how alike two attribute records are. Implementations
// must return a value in [0, 1] and be symmetric in their arguments; the
// underlying representation (sets, embeddings) is the strategy's business.
type Similarity interface {
	Score(a, b *AttributeRecord) float64
	Name() string
}

// JaccardSimilarity scores attribute records by skill-set overlap, blended
// with industry match and experience-level proximity.
type JaccardSimilarity struct {
	// SkillWeight + IndustryWeight + ExperienceWeight should sum to 1;
	// Score normalizes by their sum regardless.
	SkillWeight      float64
	IndustryWeight   float64
	ExperienceWeight float64
}

// NewJaccardSimilarity creates the default skill-overlap strategy
func NewJaccardSimilarity() *JaccardSimilarity {
	return &JaccardSimilarity{
		SkillWeight:      0.6,
		IndustryWeight:   0.25,
		ExperienceWeight: 0.15,
	}
}

// Name returns the strategy identifier
func (j *JaccardSimilarity) Name() string { return "jaccard" }

// Score implements Similarity
func (j *JaccardSimilarity) Score(a, b *AttributeRecord) float64 {
	if a == nil || b == nil {
		return 0
	}
	total := j.SkillWeight + j.IndustryWeight + j.ExperienceWeight
	if total <= 0 {
		return 0
	}

	score := j.SkillWeight * jaccard(a.SkillSet(), b.SkillSet())

	if a.Industry != "" && a.Industry == b.Industry {
		score += j.IndustryWeight
	}

	if a.ExperienceLevel != ExperienceUnknown && b.ExperienceLevel != ExperienceUnknown {
		gap := int(a.ExperienceLevel) - int(b.ExperienceLevel)
		if gap < 0 {
			gap = -gap
		}
		score += j.ExperienceWeight * (1 - float64(gap)/float64(maxExperienceGap))
	}

	return clamp01(score / total)
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for s := range a {
		if _, ok := b[s]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// CosineSimilarity scores attribute records by the angle between their
// interest vectors, mapped from [-1, 1] into [0, 1]. Records without a
// vector score 0 against everything.
type CosineSimilarity struct{}

// Name returns the strategy identifier
func (CosineSimilarity) Name() string { return "cosine" }

// Score implements Similarity
func (CosineSimilarity) Score(a, b *AttributeRecord) float64 {
	if a == nil || b == nil {
		return 0
	}
	return CosineVec(a.InterestVector, b.InterestVector)
}

// CosineVec returns the cosine similarity of two vectors mapped into
// [0, 1]. Mismatched lengths or zero norms score 0.
func CosineVec(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01((cos + 1) / 2)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
