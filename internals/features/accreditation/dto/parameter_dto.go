package dto

import (
	"strings"

	"github.com/google/uuid"

	m "akreditasiku_backend/internals/features/accreditation/model"
)

/* =========================================================
   PARAMETER
   ========================================================= */

type CreateParameterRequest struct {
	AreaLevelID uuid.UUID `json:"parameter_area_level_id" form:"parameter_area_level_id" validate:"required"`
	Name        string    `json:"parameter_name" form:"parameter_name" validate:"required,min=1,max=200"`
	Description *string   `json:"parameter_description" form:"parameter_description"`
	Weight      float64   `json:"parameter_weight" form:"parameter_weight" validate:"gte=0"`
}

func (r *CreateParameterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	trimPtr(&r.Description)
}

func (r *CreateParameterRequest) ToModel() m.ParameterModel {
	return m.ParameterModel{
		ParameterAreaLevelID: r.AreaLevelID,
		ParameterName:        r.Name,
		ParameterDescription: r.Description,
		ParameterWeight:      r.Weight,
	}
}

type UpdateParameterRequest struct {
	Name        *string  `json:"parameter_name" form:"parameter_name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"parameter_description" form:"parameter_description"`
	Weight      *float64 `json:"parameter_weight" form:"parameter_weight" validate:"omitempty,gte=0"`
}

/* =========================================================
   SUB PARAMETER
   ========================================================= */

type CreateSubParameterRequest struct {
	ParameterID uuid.UUID `json:"sub_parameter_parameter_id" form:"sub_parameter_parameter_id" validate:"required"`
	Name        string    `json:"sub_parameter_name" form:"sub_parameter_name" validate:"required,min=1,max=200"`
	Description *string   `json:"sub_parameter_description" form:"sub_parameter_description"`
	Weight      float64   `json:"sub_parameter_weight" form:"sub_parameter_weight" validate:"gte=0"`
}

func (r *CreateSubParameterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	trimPtr(&r.Description)
}

func (r *CreateSubParameterRequest) ToModel() m.SubParameterModel {
	return m.SubParameterModel{
		SubParameterParameterID: r.ParameterID,
		SubParameterName:        r.Name,
		SubParameterDescription: r.Description,
		SubParameterWeight:      r.Weight,
	}
}

type UpdateSubParameterRequest struct {
	Name        *string  `json:"sub_parameter_name" form:"sub_parameter_name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"sub_parameter_description" form:"sub_parameter_description"`
	Weight      *float64 `json:"sub_parameter_weight" form:"sub_parameter_weight" validate:"omitempty,gte=0"`
}

/* =========================================================
   SELECTION TREE (untuk pemilih evidence)
   ========================================================= */

type SubParameterNode struct {
	SubParameterID   uuid.UUID `json:"sub_parameter_id"`
	SubParameterName string    `json:"sub_parameter_name"`
	EvidenceCount    int64     `json:"evidence_count"`
}

type ParameterNode struct {
	ParameterID   uuid.UUID          `json:"parameter_id"`
	ParameterName string             `json:"parameter_name"`
	EvidenceCount int64              `json:"evidence_count"`
	SubParameters []SubParameterNode `json:"sub_parameters"`
}

type AreaLevelNode struct {
	AreaLevelID   uuid.UUID       `json:"area_level_id"`
	AreaLevelName string          `json:"area_level_name"`
	Parameters    []ParameterNode `json:"parameters"`
}

type ProgramNode struct {
	ProgramID   uuid.UUID       `json:"program_id"`
	ProgramName string          `json:"program_name"`
	AreaLevels  []AreaLevelNode `json:"area_levels"`
}
