package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func validProject() *Project {
	end := JSONTime(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
	return &Project{
		Name:          "Riverside Warehouse",
		JobNumber:     "JOB-2026-014",
		CustomerID:    uuid.New(),
		Budget:        250000,
		StartDate:     JSONTime(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)),
		EndDate:       &end,
		Location:      "14 Riverside Dr",
		ContactPerson: "J. Alvarez",
		ContactPhone:  "555-0141",
		ContactEmail:  "j.alvarez@example.com",
	}
}

func TestValidateProjectInputValid(t *testing.T) {
	if errs := ValidateProjectInput(validProject()); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateProjectInputOngoing(t *testing.T) {
	p := validProject()
	p.EndDate = nil
	if errs := ValidateProjectInput(p); len(errs) != 0 {
		t.Errorf("nil end date means ongoing and should validate, got %v", errs)
	}
}

func TestValidateProjectInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Project)
		field   string
		message string
	}{
		{"missing name", func(p *Project) { p.Name = " " }, "name", "Project name is required"},
		{"missing job number", func(p *Project) { p.JobNumber = "" }, "jobNumber", "Job number is required"},
		{"missing customer", func(p *Project) { p.CustomerID = uuid.Nil }, "customerId", "Customer selection is required"},
		{"zero budget", func(p *Project) { p.Budget = 0 }, "budget", "Valid budget amount is required"},
		{"negative budget", func(p *Project) { p.Budget = -1 }, "budget", "Valid budget amount is required"},
		{"missing start date", func(p *Project) { p.StartDate = JSONTime{} }, "startDate", "Start date is required"},
		{"end before start", func(p *Project) {
			end := JSONTime(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC))
			p.EndDate = &end
		}, "endDate", "End date must be after start date"},
		{"end equals start", func(p *Project) {
			end := p.StartDate
			p.EndDate = &end
		}, "endDate", "End date must be after start date"},
		{"missing location", func(p *Project) { p.Location = "" }, "location", "Project location is required"},
		{"missing contact person", func(p *Project) { p.ContactPerson = "" }, "contactPerson", "Contact person is required"},
		{"missing contact phone", func(p *Project) { p.ContactPhone = "" }, "contactPhone", "Contact phone is required"},
		{"bad contact email", func(p *Project) { p.ContactEmail = "not-an-email" }, "contactEmail", "Valid email address is required"},
		{"bad status", func(p *Project) { p.Status = "paused" }, "status", "Unknown project status"},
		{"bad priority", func(p *Project) { p.Priority = "critical" }, "priority", "Unknown project priority"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProject()
			tt.mutate(p)
			errs := ValidateProjectInput(p)
			if got := errs[tt.field]; got != tt.message {
				t.Errorf("errs[%q] = %q, want %q", tt.field, got, tt.message)
			}
		})
	}
}

func TestValidateProjectInputEmptyEmailAllowed(t *testing.T) {
	p := validProject()
	p.ContactEmail = ""
	if errs := ValidateProjectInput(p); errs["contactEmail"] != "" {
		t.Errorf("empty email is optional, got %q", errs["contactEmail"])
	}
}

func TestProjectStatusAndPriorityValidators(t *testing.T) {
	for _, s := range ProjectStatuses {
		if !IsValidProjectStatus(s) {
			t.Errorf("status %q should be valid", s)
		}
	}
	if IsValidProjectStatus("cancelled") {
		t.Error("cancelled is not an assignable status")
	}
	for _, p := range ProjectPriorities {
		if !IsValidProjectPriority(p) {
			t.Errorf("priority %q should be valid", p)
		}
	}
	if IsValidProjectPriority("asap") {
		t.Error("asap is not an assignable priority")
	}
}

func TestCustomerName(t *testing.T) {
	p := Project{}
	if p.CustomerName() != "" {
		t.Error("expected empty name for nil customer")
	}
	p.Customer = &Customer{Name: "Northgate Developments"}
	if p.CustomerName() != "Northgate Developments" {
		t.Errorf("CustomerName() = %q", p.CustomerName())
	}
}
