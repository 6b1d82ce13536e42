package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"Solstice/shared/blocks"
	"Solstice/shared/config"
	"Solstice/shared/worldgen"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CurrentFormatVersion é a versão do esquema do banco.
const CurrentFormatVersion = 1

// ErrNotFound indica uma geração inexistente.
var ErrNotFound = errors.New("geração não encontrada")

// WorldMetadata armazena informações globais no banco.
type WorldMetadata struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// RunModel registra uma geração e suas estatísticas.
type RunModel struct {
	ID         uint   `gorm:"primaryKey"`
	Seed       uint32 `gorm:"index"`
	Radius     int
	BoundsX    int
	BoundsY    int
	BoundsZ    int
	BaseLayer  int
	CellSize   float32
	SlabAxis   string
	GridDigest string `gorm:"index"`

	Solid       int
	Hollow      int
	SpireSolid  int
	SpireHollow int
	Well        int

	Vertices       int
	Triangles      int
	Colliders      int
	ColliderShapes int
	PaletteSize    int
	ElapsedMS      int64
	CreatedAt      time.Time
}

// MaterialModel armazena um material da paleta de uma geração.
type MaterialModel struct {
	RunID      uint `gorm:"primaryKey;autoIncrement:false"`
	Slot       int  `gorm:"primaryKey;autoIncrement:false"`
	R, G, B, A float32
	EmissiveR  float32
	EmissiveG  float32
	EmissiveB  float32
	Metallic   float32
	Roughness  float32
}

// ArtifactModel guarda a saída comprimida de uma geração.
type ArtifactModel struct {
	RunID uint `gorm:"primaryKey;autoIncrement:false"`
	Data  []byte
	Size  int
}

// Store é o banco SQLite das gerações.
type Store struct {
	DB *gorm.DB
}

// Open abre (ou cria) o banco em path e roda as migrações.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("falha ao criar diretório do banco: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no SQLite: %w", err)
	}

	if err := db.AutoMigrate(&WorldMetadata{}, &RunModel{}, &MaterialModel{}, &ArtifactModel{}); err != nil {
		return nil, fmt.Errorf("falha na migração do banco: %w", err)
	}
	if err := db.Save(&WorldMetadata{Key: "FormatVersion", Value: fmt.Sprint(CurrentFormatVersion)}).Error; err != nil {
		return nil, fmt.Errorf("falha ao salvar metadados: %w", err)
	}

	log.Printf("[Persistencia] Banco de dados SQLite aberto: %s", path)
	return &Store{DB: db}, nil
}

// Close fecha a conexão.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SaveRun grava a geração, seus materiais e o artefato em uma transação.
func (s *Store) SaveRun(cfg *config.GeneratorConfig, out *worldgen.Output, artifact []byte) (*RunModel, error) {
	st := out.Stats
	run := &RunModel{
		Seed:           st.Seed,
		Radius:         cfg.Radius,
		BoundsX:        cfg.Bounds.X,
		BoundsY:        cfg.Bounds.Y,
		BoundsZ:        cfg.Bounds.Z,
		BaseLayer:      cfg.BaseLayer,
		CellSize:       cfg.CellSize,
		SlabAxis:       out.Axis.String(),
		GridDigest:     st.GridDigest,
		Solid:          st.Blocks[blocks.Solid],
		Hollow:         st.Blocks[blocks.Hollow],
		SpireSolid:     st.Blocks[blocks.SpireSolid],
		SpireHollow:    st.Blocks[blocks.SpireHollow],
		Well:           st.Blocks[blocks.Well],
		Vertices:       st.Vertices,
		Triangles:      st.Triangles,
		Colliders:      st.Colliders,
		ColliderShapes: st.ColliderShapes,
		PaletteSize:    st.PaletteSize,
		ElapsedMS:      st.Elapsed.Milliseconds(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(run).Error; err != nil {
			return err
		}
		for i, m := range out.Materials {
			mm := MaterialModel{
				RunID: run.ID, Slot: i,
				R: m.BaseColor.R, G: m.BaseColor.G, B: m.BaseColor.B, A: m.BaseColor.A,
				EmissiveR: m.Emissive.R, EmissiveG: m.Emissive.G, EmissiveB: m.Emissive.B,
				Metallic: m.Metallic, Roughness: m.Roughness,
			}
			if err := tx.Create(&mm).Error; err != nil {
				return err
			}
		}
		if len(artifact) > 0 {
			return tx.Create(&ArtifactModel{RunID: run.ID, Data: artifact, Size: len(artifact)}).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("[Persistencia] ERRO ao salvar geração: %v", err)
		return nil, fmt.Errorf("falha ao salvar geração: %w", err)
	}
	log.Printf("[Persistencia] Geração %d salva (seed %d, %d bytes de artefato)", run.ID, run.Seed, len(artifact))
	return run, nil
}

// Run carrega uma geração pelo ID.
func (s *Store) Run(id uint) (*RunModel, error) {
	var run RunModel
	if err := s.DB.First(&run, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &run, nil
}

// RunsByDigest retorna as gerações com a mesma grade, da mais recente para a mais antiga.
func (s *Store) RunsByDigest(digest string) ([]RunModel, error) {
	var runs []RunModel
	err := s.DB.Where("grid_digest = ?", digest).Order("id desc").Find(&runs).Error
	return runs, err
}

// Materials retorna a paleta de uma geração, em ordem.
func (s *Store) Materials(runID uint) ([]MaterialModel, error) {
	var mats []MaterialModel
	err := s.DB.Where("run_id = ?", runID).Order("slot").Find(&mats).Error
	return mats, err
}

// Artifact retorna o artefato comprimido de uma geração.
func (s *Store) Artifact(runID uint) ([]byte, error) {
	var a ArtifactModel
	if err := s.DB.First(&a, "run_id = ?", runID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: artefato %d", ErrNotFound, runID)
		}
		return nil, err
	}
	return a.Data, nil
}
