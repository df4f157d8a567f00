package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"rondasapi/internal/logging"
	"rondasapi/internal/metrics"
	"rondasapi/internal/model"
	"rondasapi/internal/plantao"
	"rondasapi/internal/repository"
	"rondasapi/internal/storage"
	"rondasapi/internal/whatsapp"
)

// MaxExportSize bounds an uploaded WhatsApp export.
const MaxExportSize = 10 << 20

const textContentType = "text/plain; charset=utf-8"

type ProcessarInput struct {
	UserID      int64
	File        io.Reader
	FileName    string
	DataPlantao model.Date
	Escala      string
}

type ProcessarResult struct {
	LogFormatado   string         `json:"log_formatado"`
	TotalMensagens int            `json:"total_mensagens"`
	DataPlantao    model.Date     `json:"data_plantao"`
	Escala         plantao.Escala `json:"escala_plantao"`
	Inicio         time.Time      `json:"inicio"`
	Fim            time.Time      `json:"fim"`
	ArquivoFixo    bool           `json:"arquivo_fixo_usado"`
}

type ArquivoFixo struct {
	HasFile   bool       `json:"has_file"`
	FileName  string     `json:"file_name,omitempty"`
	Size      int64      `json:"size,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UploadInput is a full export; Month and Year, when set, keep only matching plantões.
type UploadInput struct {
	UserID   int64
	File     io.Reader
	FileName string
	Month    int
	Year     int
}

type PlantaoOutcome struct {
	DataPlantao model.Date     `json:"data_plantao"`
	Escala      plantao.Escala `json:"escala_plantao"`
	Acao        string         `json:"acao"`
	RondaID     int64          `json:"ronda_id,omitempty"`
	Mensagens   int            `json:"total_mensagens"`
	TotalRondas int            `json:"total_rondas"`
	Erro        string         `json:"erro,omitempty"`
}

type UploadResult struct {
	Condominio    model.Condominio `json:"condominio"`
	ArquivoKey    string           `json:"arquivo_key"`
	TotalPlantoes int              `json:"total_plantoes"`
	Salvos        int              `json:"salvos"`
	Plantoes      []PlantaoOutcome `json:"plantoes"`
}

const (
	AcaoCriada     = "criada"
	AcaoAtualizada = "atualizada"
	AcaoErro       = "erro"
)

// ImportService turns WhatsApp exports into ronda logs.
type ImportService interface {
	// Processar extracts one plantão's log. Without a file it falls back to
	// the user's arquivo fixo; an uploaded file replaces it.
	Processar(ctx context.Context, in ProcessarInput) (*ProcessarResult, error)
	ArquivoFixo(ctx context.Context, userID int64) (*ArquivoFixo, error)
	RemoverArquivoFixo(ctx context.Context, userID int64) error
	// UploadProcess archives a full export and saves one ronda per plantão.
	UploadProcess(ctx context.Context, in UploadInput) (*UploadResult, error)
}

type importService struct {
	store   storage.Storage
	rondas  repository.RondaRepository
	condos  CondominioService
	metrics *metrics.Domain
	log     *logging.Logger
	loc     *time.Location
	now     func() time.Time
}

func NewImportService(store storage.Storage, rondas repository.RondaRepository, condos CondominioService, m *metrics.Domain, log *logging.Logger, loc *time.Location) ImportService {
	if log == nil {
		log = logging.Nop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &importService{store: store, rondas: rondas, condos: condos, metrics: m, log: log, loc: loc, now: time.Now}
}

func fixoKey(userID int64) string {
	return fmt.Sprintf("whatsapp/fixo/%d.txt", userID)
}

func readExport(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, MaxExportSize+1))
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}
	if len(b) > MaxExportSize {
		return nil, invalid("arquivo maior que %d MB", MaxExportSize>>20)
	}
	return b, nil
}

func (s *importService) Processar(ctx context.Context, in ProcessarInput) (*ProcessarResult, error) {
	if in.DataPlantao.IsZero() {
		return nil, invalid("data_plantao é obrigatória")
	}
	if strings.TrimSpace(in.Escala) == "" {
		return nil, invalid("escala_plantao é obrigatória")
	}
	escala, err := parseEscala(in.Escala)
	if err != nil {
		return nil, err
	}

	var content []byte
	usedFixo := in.File == nil
	if in.File != nil {
		if content, err = readExport(in.File); err != nil {
			return nil, err
		}
		opt := storage.WithOriginalFilename(storage.PutObjectOptions{
			Size:        int64(len(content)),
			ContentType: textContentType,
		}, in.FileName)
		if _, err := s.store.Put(ctx, fixoKey(in.UserID), bytes.NewReader(content), opt); err != nil {
			return nil, fmt.Errorf("save arquivo fixo: %w", err)
		}
	} else {
		rc, _, err := s.store.Get(ctx, fixoKey(in.UserID))
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				return nil, ErrNoFile
			}
			return nil, fmt.Errorf("load arquivo fixo: %w", err)
		}
		content, err = readExport(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}

	msgs, err := whatsapp.Parse(bytes.NewReader(content), s.loc)
	if err != nil {
		return nil, invalid("arquivo do WhatsApp ilegível: %v", err)
	}
	s.metrics.MessagesParsed(len(msgs))

	date := time.Date(in.DataPlantao.Year(), in.DataPlantao.Month(), in.DataPlantao.Day(), 0, 0, 0, 0, s.loc)
	w := plantao.WindowFor(date, escala, s.loc)
	var kept []whatsapp.Message
	for _, m := range whatsapp.Filter(msgs, w) {
		if !m.System {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return nil, ErrNoMessages
	}

	return &ProcessarResult{
		LogFormatado:   whatsapp.FormatForRondaLog(whatsapp.Plantao{Mensagens: kept}),
		TotalMensagens: len(kept),
		DataPlantao:    in.DataPlantao,
		Escala:         escala,
		Inicio:         w.Inicio,
		Fim:            w.Fim,
		ArquivoFixo:    usedFixo,
	}, nil
}

func (s *importService) ArquivoFixo(ctx context.Context, userID int64) (*ArquivoFixo, error) {
	info, err := s.store.Stat(ctx, fixoKey(userID))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return &ArquivoFixo{HasFile: false}, nil
		}
		return nil, err
	}
	out := &ArquivoFixo{HasFile: true, FileName: storage.OriginalFilename(info), Size: info.Size}
	if !info.LastModified.IsZero() {
		t := info.LastModified
		out.UpdatedAt = &t
	}
	return out, nil
}

func (s *importService) RemoverArquivoFixo(ctx context.Context, userID int64) error {
	return s.store.Delete(ctx, fixoKey(userID))
}

func (s *importService) UploadProcess(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if in.File == nil {
		return nil, invalid("whatsapp_file é obrigatório")
	}
	if !strings.EqualFold(filepath.Ext(in.FileName), ".txt") {
		return nil, invalid("apenas arquivos .txt são aceitos")
	}
	if in.Month < 0 || in.Month > 12 {
		return nil, invalid("month deve estar entre 1 e 12")
	}
	c, err := s.condos.InferFromFilename(ctx, in.FileName)
	if err != nil {
		return nil, err
	}
	content, err := readExport(in.File)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("whatsapp/%d/%s.txt", c.ID, uuid.New().String())
	opt := storage.WithOriginalFilename(storage.PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: textContentType,
	}, in.FileName)
	if _, err := s.store.Put(ctx, key, bytes.NewReader(content), opt); err != nil {
		return nil, fmt.Errorf("archive export: %w", err)
	}

	msgs, err := whatsapp.Parse(bytes.NewReader(content), s.loc)
	if err != nil {
		return nil, invalid("arquivo do WhatsApp ilegível: %v", err)
	}
	s.metrics.MessagesParsed(len(msgs))

	var plantoes []whatsapp.Plantao
	for _, p := range whatsapp.GroupPlantoes(msgs) {
		if in.Month > 0 && int(p.Data.Month()) != in.Month {
			continue
		}
		if in.Year > 0 && p.Data.Year() != in.Year {
			continue
		}
		plantoes = append(plantoes, p)
	}
	if len(plantoes) == 0 {
		return nil, ErrNoMessages
	}

	res := &UploadResult{Condominio: *c, ArquivoKey: key, TotalPlantoes: len(plantoes), Plantoes: make([]PlantaoOutcome, 0, len(plantoes))}
	for _, p := range plantoes {
		out := s.savePlantao(ctx, c, p, in)
		if out.Acao != AcaoErro {
			res.Salvos++
		}
		res.Plantoes = append(res.Plantoes, out)
	}
	s.log.Info(map[string]any{
		"event":      "whatsapp_upload_processed",
		"condominio": c.ID,
		"key":        key,
		"plantoes":   res.TotalPlantoes,
		"salvos":     res.Salvos,
	})
	if res.Salvos == 0 {
		return res, ErrNothingSaved
	}
	return res, nil
}

// savePlantao writes one plantão as a regular ronda, updating the ronda that
// already holds the same condomínio, date and escala.
func (s *importService) savePlantao(ctx context.Context, c *model.Condominio, p whatsapp.Plantao, in UploadInput) PlantaoOutcome {
	escala := p.Escala()
	data := model.NewDate(p.Data)
	out := PlantaoOutcome{DataPlantao: data, Escala: escala, Mensagens: len(p.Mensagens)}
	fail := func(err error) PlantaoOutcome {
		s.log.Error(map[string]any{"event": "plantao_save_failed", "data": data.String(), "escala": escala, "error": err})
		out.Acao, out.Erro = AcaoErro, err.Error()
		return out
	}

	r, err := s.rondas.FindByPlantao(ctx, c.ID, data, escala, model.TipoRegular)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		r = nil
	case err != nil:
		return fail(err)
	}

	now := s.now().UTC()
	if r == nil {
		r = &model.Ronda{
			CondominioID:   c.ID,
			DataPlantao:    data,
			EscalaPlantao:  escala,
			Turno:          escala.Turno(),
			Tipo:           model.TipoRegular,
			DataHoraInicio: &now,
			CreatedAt:      now,
		}
		if in.UserID > 0 {
			r.UserID = &in.UserID
		}
	}
	r.LogBruto = whatsapp.FormatForRondaLog(p)
	r.ArquivoOrigem = in.FileName
	r.Status = model.StatusFinalizada
	r.DataHoraFim = &now
	r.UpdatedAt = now
	if _, err := analyzeLog(r, c.Nome, s.loc); err != nil {
		return fail(err)
	}

	var saved *model.Ronda
	if r.ID == 0 {
		saved, err = s.rondas.Create(ctx, r)
		out.Acao = AcaoCriada
	} else {
		saved, err = s.rondas.Update(ctx, r)
		out.Acao = AcaoAtualizada
	}
	if err != nil {
		return fail(err)
	}
	s.metrics.RondaSaved("upload")
	out.RondaID = saved.ID
	out.TotalRondas = saved.TotalRondas
	return out
}
