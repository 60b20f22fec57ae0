package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/360EntSecGroup-Skylar/excelize"

	"github.com/rafabene/agendamento-backend/internal/domain/entities"
)

// ExportSheet é o nome da folha gerada na exportação
const ExportSheet = "Consultas"

var exportHeaders = []string{"ID", "Data", "Hora", "Paciente", "Médico", "Especialidade", "Descrição"}

// ExportService gera a folha de cálculo de consultas
type ExportService struct {
	appointments *AppointmentService
}

// NewExportService cria um novo ExportService
func NewExportService(appointments *AppointmentService) *ExportService {
	return &ExportService{appointments: appointments}
}

// ExportAppointments devolve um XLSX com as consultas que o utilizador pode ver, já filtradas
func (s *ExportService) ExportAppointments(ctx context.Context, actor *entities.User, input ListAppointmentsInput) (*bytes.Buffer, error) {
	appointments, err := s.appointments.ListAppointments(ctx, actor, input)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	index := file.NewSheet(ExportSheet)
	file.DeleteSheet("Sheet1")
	file.SetActiveSheet(index)

	for col, header := range exportHeaders {
		file.SetCellValue(ExportSheet, cellName(col, 1), header)
	}

	for i, a := range appointments {
		row := i + 2
		file.SetCellValue(ExportSheet, cellName(0, row), a.ID)
		file.SetCellValue(ExportSheet, cellName(1, row), a.Slot.Date())
		file.SetCellValue(ExportSheet, cellName(2, row), a.Slot.Clock())
		if a.Patient != nil {
			file.SetCellValue(ExportSheet, cellName(3, row), a.Patient.Name)
		}
		if a.Doctor != nil {
			file.SetCellValue(ExportSheet, cellName(4, row), a.Doctor.Name)
		}
		if specialty := a.Specialty(); specialty != nil {
			file.SetCellValue(ExportSheet, cellName(5, row), specialty.Name)
		}
		if a.Notes != nil {
			file.SetCellValue(ExportSheet, cellName(6, row), *a.Notes)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

// cellName converte coluna (0 = A) e linha em referência de célula
func cellName(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}
