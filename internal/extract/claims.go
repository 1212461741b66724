package extract

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dkorolev/crossfoot/internal/model"
)

// claimFile is the extraction JSON envelope emitted by the upstream page
// extractor
type claimFile struct {
	Claims []model.Claim `json:"claims"`
}

// LoadClaims reads claims from an extraction JSON file. Both the
// {"claims": [...]} envelope and a bare top-level array are accepted.
// Entries without a value are dropped; missing fields get stable
// defaults so downstream stages never see a partially-formed claim.
func LoadClaims(path string) ([]model.Claim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read claims file: %w", err)
	}
	return ParseClaims(data)
}

// ParseClaims decodes and normalizes extraction JSON
func ParseClaims(data []byte) ([]model.Claim, error) {
	var file claimFile
	if err := json.Unmarshal(data, &file); err != nil || file.Claims == nil {
		var bare []model.Claim
		if bareErr := json.Unmarshal(data, &bare); bareErr != nil {
			if err == nil {
				err = bareErr
			}
			return nil, fmt.Errorf("decode claims: %w", err)
		}
		file.Claims = bare
	}

	claims := make([]model.Claim, 0, len(file.Claims))
	for i, claim := range file.Claims {
		if claim.Value == "" {
			continue
		}
		if claim.ID == "" {
			claim.ID = fmt.Sprintf("pdf_value_%d", i+1)
		}
		if claim.Category == "" {
			claim.Category = model.CategoryOther
		}
		if claim.DataType == "" {
			claim.DataType = string(ClassifyDataType(claim.Value))
		}
		if claim.BBox == nil {
			box := model.DefaultBBox()
			claim.BBox = &box
		} else {
			box := claim.BBox.Clamp()
			claim.BBox = &box
		}
		claims = append(claims, claim)
	}
	return claims, nil
}
