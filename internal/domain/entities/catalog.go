package entities

import "errors"

// Specialty é uma disciplina médica (ex.: Cardiologia) que agrupa médicos
type Specialty struct {
	ID      uint
	Name    string
	Doctors []*Doctor // carregado apenas quando pedido
}

// Validate valida a especialidade
func (s *Specialty) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// Doctor é um médico que pertence a exatamente uma especialidade
type Doctor struct {
	ID          uint
	Name        string
	SpecialtyID uint
	Specialty   *Specialty // opcional (preload)
}

// BelongsTo verifica se o médico pertence à especialidade
func (d *Doctor) BelongsTo(specialtyID uint) bool {
	return d.SpecialtyID != 0 && d.SpecialtyID == specialtyID
}

// Validate valida o médico
func (d *Doctor) Validate() error {
	if d.Name == "" {
		return errors.New("name is required")
	}
	if d.SpecialtyID == 0 {
		return errors.New("specialty is required")
	}
	return nil
}
