package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"scenthub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type perfumeListResponse struct {
	Total   int              `json:"total"`
	Items   []models.Perfume `json:"items"`
	Facets  facetsResponse   `json:"facets"`
	Applied json.RawMessage  `json:"applied"`
}

type facetsResponse struct {
	Brands   []string `json:"brands"`
	Notes    []string `json:"notes"`
	Families []string `json:"families"`
}

type perfumeDetailResponse struct {
	Perfume     models.Perfume      `json:"perfume"`
	NotePyramid map[string][]string `json:"note_pyramid"`
}

type brandListResponse struct {
	Total int            `json:"total"`
	Items []models.Brand `json:"items"`
}

type brandDetailResponse struct {
	Brand    models.Brand     `json:"brand"`
	Perfumes []models.Perfume `json:"perfumes"`
}

func main() {
	global := flag.NewFlagSet("scenthub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd := args[0]; cmd {
	case "perfumes":
		handlePerfumes(ctx, client, *baseURL, args[1:])
	case "perfume":
		handlePerfume(ctx, client, *baseURL, args[1:])
	case "brands":
		handleBrands(ctx, client, *baseURL)
	case "brand":
		handleBrand(ctx, client, *baseURL, args[1:])
	case "facets":
		handleFacets(ctx, client, *baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handlePerfumes(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("perfumes", flag.ExitOnError)
	query := fs.String("q", "", "search text (name, brand or note substring)")
	brands := fs.String("brands", "", "comma-separated brand filter")
	notes := fs.String("notes", "", "comma-separated note filter")
	families := fs.String("families", "", "comma-separated family filter")
	_ = fs.Parse(args)

	u, err := url.Parse(baseURL + "/perfumes")
	if err != nil {
		log.Fatalf("invalid base url: %v", err)
	}
	qv := u.Query()
	if *query != "" {
		qv.Set("q", *query)
	}
	if *brands != "" {
		qv.Set("brands", *brands)
	}
	if *notes != "" {
		qv.Set("notes", *notes)
	}
	if *families != "" {
		qv.Set("families", *families)
	}
	u.RawQuery = qv.Encode()

	var resp perfumeListResponse
	if err := doJSON(ctx, client, u.String(), &resp); err != nil {
		log.Fatalf("perfumes failed: %v", err)
	}
	printJSON(resp)
}

func handlePerfume(ctx context.Context, client *http.Client, baseURL string, args []string) {
	if len(args) == 0 || args[0] == "" {
		log.Fatal("usage: scenthub perfume <slug>")
	}

	var resp perfumeDetailResponse
	if err := doJSON(ctx, client, baseURL+"/perfumes/"+url.PathEscape(args[0]), &resp); err != nil {
		log.Fatalf("perfume failed: %v", err)
	}
	printJSON(resp)
}

func handleBrands(ctx context.Context, client *http.Client, baseURL string) {
	var resp brandListResponse
	if err := doJSON(ctx, client, baseURL+"/brands", &resp); err != nil {
		log.Fatalf("brands failed: %v", err)
	}
	printJSON(resp)
}

func handleBrand(ctx context.Context, client *http.Client, baseURL string, args []string) {
	if len(args) == 0 || args[0] == "" {
		log.Fatal("usage: scenthub brand <slug>")
	}

	var resp brandDetailResponse
	if err := doJSON(ctx, client, baseURL+"/brands/"+url.PathEscape(args[0]), &resp); err != nil {
		log.Fatalf("brand failed: %v", err)
	}
	printJSON(resp)
}

// handleFacets prints just the facet value sets of the full catalog,
// which is what a filter dialog needs before anything is selected.
func handleFacets(ctx context.Context, client *http.Client, baseURL string) {
	var resp perfumeListResponse
	if err := doJSON(ctx, client, baseURL+"/perfumes", &resp); err != nil {
		log.Fatalf("facets failed: %v", err)
	}
	printJSON(resp.Facets)
}

func doJSON(ctx context.Context, client *http.Client, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s failed: %s", endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func printUsage() {
	fmt.Println("scenthub <command> [flags]")
	fmt.Println("commands:")
	fmt.Println("  perfumes [-q text] [-brands a,b] [-notes a,b] [-families a,b]")
	fmt.Println("  perfume <slug>")
	fmt.Println("  brands")
	fmt.Println("  brand <slug>")
	fmt.Println("  facets")
	fmt.Println("global flags:")
	fmt.Println("  -api <base url>   (default " + defaultBaseURL + ")")
}
