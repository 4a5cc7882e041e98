package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	ID    string
	Name  string
	Email string
	Role  string

	CanEditAllFields bool
	CanDeleteTickets bool
	CanManageUsers   bool
	CanViewDashboard bool
	CanViewTickets   bool
	CanViewAssets    bool
	CanViewAdmin     bool
}

type seedClient struct {
	ID         string
	Name       string
	Contact    string
	Requesters []string
}

type seedAsset struct {
	ID           string
	ClientID     string
	Type         string
	Brand        string
	Model        string
	SerialNumber string
}

var seedUsers = []seedUser{
	{
		ID: "1", Name: "Guilherme Pessoa", Email: "guilherme@vyrtus.com.br", Role: "ADMIN",
		CanEditAllFields: true, CanDeleteTickets: true, CanManageUsers: true,
		CanViewDashboard: true, CanViewTickets: true, CanViewAssets: true, CanViewAdmin: true,
	},
	{
		ID: "2", Name: "Rogério Settim", Email: "rogerio@vyrtus.com.br", Role: "AGENT",
		CanViewDashboard: true, CanViewTickets: true, CanViewAssets: true,
	},
	{
		ID: "3", Name: "Ricardo Silva", Email: "ricardo@vyrtus.com.br", Role: "AGENT",
		CanViewDashboard: true, CanViewTickets: true,
	},
}

var seedClients = []seedClient{
	{ID: "c1", Name: "Banco Central", Contact: "Maria Silva",
		Requesters: []string{"Maria Silva", "Carlos Andrade", "Felipe Santos"}},
	{ID: "c2", Name: "Logística Express", Contact: "João Mendes",
		Requesters: []string{"João Mendes", "Beatriz Souza", "Ricardo Oliveira"}},
	{ID: "c3", Name: "Supermercado Sol", Contact: "Ana Paula",
		Requesters: []string{"Ana Paula", "Marcos Lima", "Patrícia Gomes"}},
}

var seedAssets = []seedAsset{
	{ID: "220001", ClientID: "c1", Type: "Servidor", Brand: "Dell", Model: "PowerEdge R740", SerialNumber: "SN-BC-001"},
	{ID: "220002", ClientID: "c1", Type: "Switch", Brand: "Cisco", Model: "Catalyst 2960", SerialNumber: "SN-BC-002"},
	{ID: "220003", ClientID: "c2", Type: "Desktop", Brand: "HP", Model: "EliteDesk 800", SerialNumber: "SN-LE-101"},
	{ID: "220004", ClientID: "c2", Type: "Notebook", Brand: "Lenovo", Model: "ThinkPad T14", SerialNumber: "SN-LE-102"},
	{ID: "220005", ClientID: "c3", Type: "NVR", Brand: "Intelbras", Model: "NVR 5000", SerialNumber: "SN-SS-501"},
	{ID: "220006", ClientID: "c3", Type: "Câmera IP", Brand: "Hikvision", Model: "DS-2CD", SerialNumber: "SN-SS-502"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			clearTables(db)
		}

		password := cfg.Seed.DefaultPassword
		if password == "" {
			password = "password"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		for _, u := range seedUsers {
			var exists int
			if err := db.Raw("SELECT 1 FROM usuarios WHERE email = ?", u.Email).Row().Scan(&exists); err == nil {
				fmt.Printf("user %s already exists; skipping\n", u.Email)
				continue
			}

			if err := db.Exec(`INSERT INTO usuarios
				(id, nome, email, perfil, senha, ativo,
				 pode_editar_campos, pode_excluir_chamados, pode_gerenciar_usuarios,
				 pode_ver_dashboard, pode_ver_chamados, pode_ver_ativos, pode_ver_admin,
				 data_criacao, data_atualizacao)
				VALUES (?, ?, ?, ?, ?, true, ?, ?, ?, ?, ?, ?, ?, now(), now())`,
				u.ID, u.Name, u.Email, u.Role, string(hash),
				u.CanEditAllFields, u.CanDeleteTickets, u.CanManageUsers,
				u.CanViewDashboard, u.CanViewTickets, u.CanViewAssets, u.CanViewAdmin,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Email, err)
			}
			fmt.Println("Seeded user:", u.Email)
		}

		for _, c := range seedClients {
			var exists int
			if err := db.Raw("SELECT 1 FROM clientes WHERE id = ?", c.ID).Row().Scan(&exists); err != nil {
				if err := db.Exec("INSERT INTO clientes (id, nome, contato) VALUES (?, ?, ?)",
					c.ID, c.Name, c.Contact).Error; err != nil {
					log.Fatalf("failed to insert client %s: %v", c.Name, err)
				}
				fmt.Println("Seeded client:", c.Name)
			}

			for _, r := range c.Requesters {
				var exists int
				if err := db.Raw("SELECT 1 FROM solicitantes WHERE cliente_id = ? AND nome = ?", c.ID, r).Row().Scan(&exists); err == nil {
					continue
				}
				if err := db.Exec("INSERT INTO solicitantes (cliente_id, nome) VALUES (?, ?)", c.ID, r).Error; err != nil {
					log.Fatalf("failed to insert requester %s for client %s: %v", r, c.Name, err)
				}
			}
		}

		for _, a := range seedAssets {
			var exists int
			if err := db.Raw("SELECT 1 FROM ativos WHERE id = ?", a.ID).Row().Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec(`INSERT INTO ativos (id, cliente_id, tipo, marca, modelo, numero_serie)
				VALUES (?, ?, ?, ?, ?, ?)`,
				a.ID, a.ClientID, a.Type, a.Brand, a.Model, a.SerialNumber).Error; err != nil {
				log.Fatalf("failed to insert asset %s: %v", a.ID, err)
			}
			fmt.Println("Seeded asset:", a.ID)
		}

		fmt.Println("Seed data loaded successfully")
	},
}

func clearTables(db *gorm.DB) {
	// Children before parents, foreign keys are enforced
	tables := []string{
		"anexos", "atividades", "chamado_ativos", "chamados",
		"ativos", "solicitantes", "clientes", "usuarios",
	}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", t, err)
		}
	}
	fmt.Println("Cleared existing data")
}
