package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

func main() {
	// Check which file to verify
	filename := "output/route_collection.xlsx"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	sheetName := "Requests"
	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== EXCEL REQUEST CHECK: %s ===\n", filename)
	fmt.Printf("Checking sheet: %s\n", sheetName)
	fmt.Printf("Total rows: %d\n\n", len(rows))

	problems := 0
	expectedNo := 1
	folders := 0
	for i, row := range rows {
		if i == 0 {
			continue // Skip header
		}
		cells := append(row, make([]string, 7)...)

		// Folder marker rows carry only the folder path
		if strings.TrimSpace(cells[0]) == "" {
			if strings.TrimSpace(cells[1]) == "" {
				fmt.Printf("❌ EMPTY ROW at row %d\n", i+1)
				problems++
			}
			folders++
			continue
		}

		no, err := strconv.Atoi(cells[0])
		if err != nil || no != expectedNo {
			fmt.Printf("❌ NUMBERING GAP at row %d: got %q, want %d\n", i+1, cells[0], expectedNo)
			problems++
		}
		expectedNo++

		if strings.TrimSpace(cells[3]) == "" {
			fmt.Printf("❌ MISSING METHOD at row %d\n", i+1)
			problems++
		}
		if !strings.HasPrefix(cells[4], "{{base_url}}") {
			fmt.Printf("❌ URL WITHOUT {{base_url}} at row %d: %q\n", i+1, cells[4])
			problems++
		}
		if strings.HasPrefix(cells[1], " ") || strings.HasPrefix(cells[2], " ") {
			fmt.Printf("❌ INDENTED CELL at row %d\n", i+1)
			problems++
		}
	}

	fmt.Printf("Requests: %d, folder markers: %d\n\n", expectedNo-1, folders)
	if problems == 0 {
		fmt.Println("✅ Request index is consistent")
	} else {
		fmt.Printf("❌ Found %d problem(s) in the request index\n", problems)
		os.Exit(1)
	}
}
