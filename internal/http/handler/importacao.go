package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"rondasapi/internal/model"
	"rondasapi/internal/service"
)

// uploadFailure keeps the per-plantão outcomes next to the error when no
// ronda could be saved.
type uploadFailure struct {
	errorPayload
	Resultado *service.UploadResult `json:"resultado"`
}

// formFile returns the uploaded part or nil when the field is absent.
func formFile(c *fiber.Ctx, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fh.Size > service.MaxExportSize {
		return nil, &paramError{"FILE_TOO_LARGE", "arquivo excede o tamanho máximo de 10MB"}
	}
	return fh, nil
}

// ProcessarWhatsApp extracts one plantão from an uploaded export or from the
// caller's arquivo fixo.
//
//	@Summary	Extract a plantão log from a WhatsApp export
//	@Tags		importacao
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		arquivo_whatsapp	formData	file	false	"WhatsApp export (.txt)"
//	@Param		data_plantao		formData	string	true	"YYYY-MM-DD"
//	@Param		escala_plantao		formData	string	true	"06h às 18h | 18h às 06h"
//	@Success	200					{object}	service.ProcessarResult
//	@Failure	404					{object}	errorPayload
//	@Router		/api/rondas/processar-whatsapp [post]
func ProcessarWhatsApp(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawDate := strings.TrimSpace(c.FormValue("data_plantao"))
		if rawDate == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "data_plantao é obrigatória")
		}
		data, err := model.ParseDate(rawDate, time.UTC)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "data_plantao deve estar no formato YYYY-MM-DD")
		}

		in := service.ProcessarInput{
			UserID:      userID(c),
			DataPlantao: data,
			Escala:      c.FormValue("escala_plantao"),
		}

		fh, err := formFile(c, "arquivo_whatsapp")
		if err != nil {
			return writeServiceError(c, err)
		}
		if fh != nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()
			in.File, in.FileName = f, fh.Filename
		}

		res, err := svc.Processar(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func GetArquivoFixo(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ArquivoFixo(c.UserContext(), userID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func DeleteArquivoFixo(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.RemoverArquivoFixo(c.UserContext(), userID(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func formInt(c *fiber.Ctx, name string) (int, error) {
	raw := strings.TrimSpace(c.FormValue(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{"INVALID_INPUT", name + " inválido"}
	}
	return n, nil
}

// UploadProcess saves every plantão of a full export as a ronda.
//
//	@Summary	Import a full WhatsApp export
//	@Tags		importacao
//	@Accept		multipart/form-data
//	@Produce	json
//	@Security	BearerAuth
//	@Param		whatsapp_file	formData	file	true	"WhatsApp export (.txt)"
//	@Param		month			formData	int		false	"1-12"
//	@Param		year			formData	int		false	"Year"
//	@Success	200				{object}	service.UploadResult
//	@Failure	400				{object}	errorPayload
//	@Failure	500				{object}	uploadFailure
//	@Router		/api/rondas/upload-process [post]
func UploadProcess(svc service.ImportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := formFile(c, "whatsapp_file")
		if err != nil {
			return writeServiceError(c, err)
		}
		if fh == nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "whatsapp_file é obrigatório")
		}
		month, err := formInt(c, "month")
		if err != nil {
			return writeServiceError(c, err)
		}
		year, err := formInt(c, "year")
		if err != nil {
			return writeServiceError(c, err)
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := svc.UploadProcess(c.UserContext(), service.UploadInput{
			UserID:   userID(c),
			File:     io.Reader(f),
			FileName: fh.Filename,
			Month:    month,
			Year:     year,
		})
		if errors.Is(err, service.ErrNothingSaved) && res != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(uploadFailure{
				errorPayload: errorPayload{
					RequestID: requestIDFromCtx(c),
					Error:     errorEnvelope{Code: "NOTHING_SAVED", Message: err.Error()},
				},
				Resultado: res,
			})
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}
