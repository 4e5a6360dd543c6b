package dto

import (
	"strings"

	"github.com/google/uuid"

	m "akreditasiku_backend/internals/features/accreditation/model"
)

/* =========================================================
   PROGRAM
   ========================================================= */

type CreateProgramRequest struct {
	Name        string  `json:"program_name" form:"program_name" validate:"required,min=1,max=160"`
	Description *string `json:"program_description" form:"program_description"`
}

func (r *CreateProgramRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	trimPtr(&r.Description)
}

func (r *CreateProgramRequest) ToModel() m.ProgramModel {
	return m.ProgramModel{
		ProgramName:        r.Name,
		ProgramDescription: r.Description,
	}
}

type UpdateProgramRequest struct {
	Name        *string `json:"program_name" form:"program_name" validate:"omitempty,min=1,max=160"`
	Description *string `json:"program_description" form:"program_description"`
}

/* =========================================================
   AREA LEVEL
   ========================================================= */

type CreateAreaLevelRequest struct {
	ProgramID   uuid.UUID `json:"area_level_program_id" form:"area_level_program_id" validate:"required"`
	Name        string    `json:"area_level_name" form:"area_level_name" validate:"required,min=1,max=160"`
	Description *string   `json:"area_level_description" form:"area_level_description"`
}

func (r *CreateAreaLevelRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	trimPtr(&r.Description)
}

func (r *CreateAreaLevelRequest) ToModel() m.AreaLevelModel {
	return m.AreaLevelModel{
		AreaLevelProgramID:   r.ProgramID,
		AreaLevelName:        r.Name,
		AreaLevelDescription: r.Description,
	}
}

type UpdateAreaLevelRequest struct {
	Name        *string `json:"area_level_name" form:"area_level_name" validate:"omitempty,min=1,max=160"`
	Description *string `json:"area_level_description" form:"area_level_description"`
}

func trimPtr(pp **string) {
	if pp == nil || *pp == nil {
		return
	}
	v := strings.TrimSpace(**pp)
	if v == "" {
		*pp = nil
		return
	}
	*pp = &v
}
