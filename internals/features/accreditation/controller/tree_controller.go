package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	accDTO "akreditasiku_backend/internals/features/accreditation/dto"
	accModel "akreditasiku_backend/internals/features/accreditation/model"
	helper "akreditasiku_backend/internals/helpers"
)

type TreeController struct {
	DB *gorm.DB
}

// GET /api/accreditation/tree
// Indeks pemilihan untuk evidence: seluruh hirarki + jumlah bukti per node.
func (h *TreeController) SelectionIndex(c *fiber.Ctx) error {
	var programs []accModel.ProgramModel
	if err := h.DB.Order("program_name").Find(&programs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil hirarki")
	}

	var areas []accModel.AreaLevelModel
	if err := h.DB.Order("area_level_name").Find(&areas).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil hirarki")
	}

	var params []accModel.ParameterModel
	if err := h.DB.Order("parameter_name").Find(&params).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil hirarki")
	}

	var subs []accModel.SubParameterModel
	if err := h.DB.Order("sub_parameter_name").Find(&subs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil hirarki")
	}

	paramCounts, subCounts := h.evidenceCounts()

	// susun bottom-up
	subsByParam := map[uuid.UUID][]accDTO.SubParameterNode{}
	for _, s := range subs {
		subsByParam[s.SubParameterParameterID] = append(subsByParam[s.SubParameterParameterID], accDTO.SubParameterNode{
			SubParameterID:   s.SubParameterID,
			SubParameterName: s.SubParameterName,
			EvidenceCount:    subCounts[s.SubParameterID],
		})
	}

	paramsByArea := map[uuid.UUID][]accDTO.ParameterNode{}
	for _, p := range params {
		node := accDTO.ParameterNode{
			ParameterID:   p.ParameterID,
			ParameterName: p.ParameterName,
			EvidenceCount: paramCounts[p.ParameterID],
			SubParameters: subsByParam[p.ParameterID],
		}
		if node.SubParameters == nil {
			node.SubParameters = []accDTO.SubParameterNode{}
		}
		paramsByArea[p.ParameterAreaLevelID] = append(paramsByArea[p.ParameterAreaLevelID], node)
	}

	areasByProgram := map[uuid.UUID][]accDTO.AreaLevelNode{}
	for _, a := range areas {
		node := accDTO.AreaLevelNode{
			AreaLevelID:   a.AreaLevelID,
			AreaLevelName: a.AreaLevelName,
			Parameters:    paramsByArea[a.AreaLevelID],
		}
		if node.Parameters == nil {
			node.Parameters = []accDTO.ParameterNode{}
		}
		areasByProgram[a.AreaLevelProgramID] = append(areasByProgram[a.AreaLevelProgramID], node)
	}

	tree := make([]accDTO.ProgramNode, 0, len(programs))
	for _, p := range programs {
		node := accDTO.ProgramNode{
			ProgramID:   p.ProgramID,
			ProgramName: p.ProgramName,
			AreaLevels:  areasByProgram[p.ProgramID],
		}
		if node.AreaLevels == nil {
			node.AreaLevels = []accDTO.AreaLevelNode{}
		}
		tree = append(tree, node)
	}

	return helper.JsonOK(c, "Hirarki akreditasi", tree)
}

func (h *TreeController) evidenceCounts() (map[uuid.UUID]int64, map[uuid.UUID]int64) {
	type countRow struct {
		ID    uuid.UUID
		Total int64
	}

	paramCounts := map[uuid.UUID]int64{}
	var rows []countRow
	if err := h.DB.Raw(`
		SELECT evidence_parameter_id AS id, COUNT(*) AS total
		FROM evidence GROUP BY evidence_parameter_id
	`).Scan(&rows).Error; err == nil {
		for _, r := range rows {
			paramCounts[r.ID] = r.Total
		}
	}

	subCounts := map[uuid.UUID]int64{}
	rows = nil
	if err := h.DB.Raw(`
		SELECT evidence_sub_parameter_id AS id, COUNT(*) AS total
		FROM evidence
		WHERE evidence_sub_parameter_id IS NOT NULL
		GROUP BY evidence_sub_parameter_id
	`).Scan(&rows).Error; err == nil {
		for _, r := range rows {
			subCounts[r.ID] = r.Total
		}
	}

	return paramCounts, subCounts
}
