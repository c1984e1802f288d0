package repository

import "github.com/douradinams/Douradinams/internal/models"

// DefaultWelcomeMessage is served while no settings have been saved.
const DefaultWelcomeMessage = "🚀 Bem-vindo ao School Pass! O sistema de transporte escolar inteligente."

func seedSchools() []models.School {
	return []models.School{
		{ID: "1", Name: "Colégio Integração"},
		{ID: "2", Name: "Escola Estadual Modelo"},
	}
}

func seedStaff() []models.StaffMember {
	return []models.StaffMember{
		{ID: "1", Name: "Motorista Ricardo", CPF: "111.111.111-11", Role: models.StaffRoleDriver},
		{ID: "admin-1", Name: "Admin Principal", CPF: "000.000.000-00", Role: models.StaffRoleAdmin},
	}
}
