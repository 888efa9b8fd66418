package usecase_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/iho/goreceipts/internal/domain"
	"github.com/iho/goreceipts/internal/usecase"
	"github.com/iho/goreceipts/internal/usecase/mocks"
)

func TestExportUseCase_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	exporter := mocks.NewMockRecordExporter(ctrl)

	records := []domain.Record{printable("a", "Ana"), {ID: "blank"}}

	exporter.EXPECT().Export(gomock.Any(), records).DoAndReturn(func(w io.Writer, rs []domain.Record) error {
		_, err := w.Write([]byte("sheet"))
		return err
	})
	exporter.EXPECT().Extension().Return(".xlsx")
	exporter.EXPECT().ContentType().Return("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	uc := usecase.NewExportUseCase(staticLister{records: records}, exporter, "", zerolog.Nop(), nil)

	result, err := uc.Export(context.Background())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if result.Filename != "recibos_oficiales_alquiler.xlsx" {
		t.Fatalf("filename = %q", result.Filename)
	}
	if string(result.Data) != "sheet" || result.Records != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestExportUseCase_ExporterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	exporter := mocks.NewMockRecordExporter(ctrl)
	exporter.EXPECT().Export(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

	uc := usecase.NewExportUseCase(staticLister{}, exporter, "recibos.pdf", zerolog.Nop(), nil)

	if _, err := uc.Export(context.Background()); err == nil {
		t.Fatal("expected exporter error")
	}
}
