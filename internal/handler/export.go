package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/assessment-portal/internal/handler/dto"
	"github.com/yourusername/assessment-portal/internal/handler/helper"
)

var leaderboardExportHeaders = []string{"Rank", "Name", "College", "Score"}

// exportCSV выгружает рейтинг в CSV с экранированием спецсимволов
func exportCSV(c *gin.Context, entries []dto.LeaderboardEntryDTO, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(leaderboardExportHeaders)
	for _, e := range entries {
		writer.Write([]string{
			strconv.Itoa(e.Rank),
			sanitizeForExcel(e.Name),
			sanitizeForExcel(e.College),
			strconv.FormatFloat(e.Score, 'f', 2, 64),
		})
	}
}

// exportXLSX выгружает рейтинг в Excel через StreamWriter
func exportXLSX(c *gin.Context, entries []dto.LeaderboardEntryDTO, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leaderboard"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[UserHandler] Ошибка создания StreamWriter: %v", err)
		helper.Fail(c, http.StatusInternalServerError, "Failed to create Excel file")
		return
	}

	headers := make([]interface{}, len(leaderboardExportHeaders))
	for i, h := range leaderboardExportHeaders {
		headers[i] = h
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[UserHandler] Ошибка записи заголовков: %v", err)
	}

	for i, e := range entries {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{e.Rank, sanitizeForExcel(e.Name), sanitizeForExcel(e.College), e.Score}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[UserHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[UserHandler] Ошибка при Flush: %v", err)
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[UserHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
