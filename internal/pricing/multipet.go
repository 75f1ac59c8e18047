package pricing

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/TemirB/figurine-cart/internal/domain"
)

// MinPhotos is how many photos a pet needs unless they are marked pending.
const MinPhotos = 3

// MaxInstructions caps the free text a shopper may leave per pet, in characters.
const MaxInstructions = 2000

// DiscountTiers is the number of distinct per-pet prices; every pet from the
// last tier on pays the same.
const DiscountTiers = 4

const TagPhotosPending = "[Photos pending]"

var (
	ErrNoVariant        = errors.New("pet has no variant")
	ErrTooFewPhotos     = fmt.Errorf("at least %d photos are required", MinPhotos)
	ErrNoPreferredPhoto = errors.New("preferred photo must be selected")
	ErrBadPreferred     = errors.New("preferred photo out of range")

	ErrInstructionsTooLong = fmt.Errorf("instructions exceed %d characters", MaxInstructions)
)

var multiPetTag = regexp.MustCompile(`\[Multi-pet (\d+)% off\]`)

// Pet is one figurine in a multi-pet order. PreferredPhoto is 1-based, 0 means none.
type Pet struct {
	VariantID      string   `json:"variantId" validate:"required"`
	PhotosPending  bool     `json:"photosPending"`
	PreferredPhoto int      `json:"preferredPhoto" validate:"gte=0"`
	Instructions   string   `json:"instructions" validate:"max=2000"`
	PhotoAssetIDs  []string `json:"petPhotos"`
}

// DiscountForPet is the progressive discount for the pet at a zero-based
// position: first pet full price, then 7%, 13%, and 20% from the fourth on.
func DiscountForPet(index int) int {
	switch {
	case index <= 0:
		return 0
	case index == 1:
		return 7
	case index == 2:
		return 13
	default:
		return 20
	}
}

// PetPrice is the display price for a pet at index, in minor units.
func PetPrice(base int64, index int) int64 {
	return base - percentOf(base, DiscountForPet(index))
}

// PetPrices lists the price of the first, second and following pets.
func PetPrices(base int64) []int64 {
	out := make([]int64, DiscountTiers)
	for i := range out {
		out[i] = PetPrice(base, i)
	}
	return out
}

func (p Pet) Validate() error {
	if strings.TrimSpace(p.VariantID) == "" {
		return ErrNoVariant
	}
	if utf8.RuneCountInString(p.Instructions) > MaxInstructions {
		return ErrInstructionsTooLong
	}
	if p.PhotosPending {
		return nil
	}
	if len(p.PhotoAssetIDs) < MinPhotos {
		return ErrTooFewPhotos
	}
	if p.PreferredPhoto == 0 {
		return ErrNoPreferredPhoto
	}
	if p.PreferredPhoto < 0 || p.PreferredPhoto > len(p.PhotoAssetIDs) {
		return ErrBadPreferred
	}
	return nil
}

// Annotations builds the line annotations for the pet at index. The order of
// tags is discount, pending photos, preferred pose, then free text.
func Annotations(index int, p Pet) *domain.Annotations {
	var parts []string
	if pct := DiscountForPet(index); pct > 0 {
		parts = append(parts, fmt.Sprintf("[Multi-pet %d%% off]", pct))
	}
	if p.PhotosPending {
		parts = append(parts, TagPhotosPending)
	}
	if p.PreferredPhoto > 0 {
		parts = append(parts, fmt.Sprintf("[Preferred pose: Photo %d]", p.PreferredPhoto))
	}
	if s := strings.TrimSpace(p.Instructions); s != "" {
		parts = append(parts, s)
	}

	ann := &domain.Annotations{SpecialInstructions: strings.Join(parts, " ")}
	if len(p.PhotoAssetIDs) > 0 {
		ann.PetPhotos = append([]string(nil), p.PhotoAssetIDs...)
	}
	return ann
}

// DiscountPercent extracts the multi-pet discount tag from line instructions.
func DiscountPercent(instructions string) (int, bool) {
	m := multiPetTag.FindStringSubmatch(instructions)
	if m == nil {
		return 0, false
	}
	pct, err := strconv.Atoi(m[1])
	if err != nil || pct <= 0 || pct > 100 {
		return 0, false
	}
	return pct, true
}

// LineDiscount is the per-unit adjustment the promotion applies to a line:
// zero or negative, rounded to the nearest minor unit.
func LineDiscount(proratedUnitPrice int64, instructions string) int64 {
	pct, ok := DiscountPercent(instructions)
	if !ok {
		return 0
	}
	return -percentOf(proratedUnitPrice, pct)
}

func percentOf(amount int64, pct int) int64 {
	if amount <= 0 || pct <= 0 {
		return 0
	}
	return (amount*int64(pct) + 50) / 100
}
