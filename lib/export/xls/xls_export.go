package xlsexport

import (
	"bytes"
	"strings"

	dbmodels "bim-collab-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportApplicationList(list []dbmodels.ProjectApplication) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var applicationHeaders = []string{"Progetto", "Professionista", "Stato", "Data candidatura", "Competenze", "Data colloquio proposta", "Motivo rifiuto"}

func (i impl) ExportApplicationList(list []dbmodels.ProjectApplication) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, applicationHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		row, err = writeApplicationData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Candidature")
	return f.WriteToBuffer()
}

func writeApplicationData(f *excelize.File, sheet string, list []dbmodels.ProjectApplication, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(applicationHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		col := 1
		projectTitle := ""
		if item.Project != nil {
			projectTitle = item.Project.Title
		}
		if err := writeColumn(f, sheet, col, row, projectTitle); err != nil {
			return row, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, item.ProfessionalID); err != nil {
			return row, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return row, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, item.ApplicationDate.Format("02.01.2006")); err != nil {
			return row, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, strings.Join([]string(item.RelevantSkills), ", ")); err != nil {
			return row, err
		}
		col++
		proposedDate := ""
		if item.ProposedInterviewDate != nil {
			proposedDate = item.ProposedInterviewDate.Format("02.01.2006 15:04")
		}
		if err := writeColumn(f, sheet, col, row, proposedDate); err != nil {
			return row, err
		}
		col++
		if err := writeColumn(f, sheet, col, row, item.RejectionReason); err != nil {
			return row, err
		}
	}
	return row, nil
}
