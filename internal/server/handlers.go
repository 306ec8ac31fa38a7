package server

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tatsukoohno1441/temutool/internal/exporter"
	"github.com/tatsukoohno1441/temutool/internal/logger"
	"github.com/tatsukoohno1441/temutool/internal/pipeline"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"

	defaultManifestName = "shipping.csv"
)

type artifactRef struct {
	Token    string `json:"token"`
	Filename string `json:"filename"`
}

type manifestResponse struct {
	CSV         artifactRef  `json:"csv"`
	Workbook    *artifactRef `json:"workbook"`
	Rows        int          `json:"rows"`
	MultiOrders int          `json:"multiOrders"`
}

// Health GET /api/health
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Report 上传订单导出文件，直接返回装箱表
// POST /api/report
func (s *Server) Report(c *gin.Context) {
	name, data, err := readFormFile(c, "file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := pipeline.BuildReport(name, bytes.NewReader(data), pipeline.ReportOptionsFromConfig(s.cfg), logger.FromContext(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	filename := filepath.Base(pipeline.DefaultReportPath(name, s.cfg.Report.OutputSuffix))
	c.Header("Content-Disposition", contentDisposition(filename))
	c.Data(http.StatusOK, contentTypeXLSX, res.Data)
}

// Manifest 上传原始数据与装箱表，生成发货清单并返回下载 token
// POST /api/manifest
func (s *Server) Manifest(c *gin.Context) {
	origName, origData, err := readFormFile(c, "original")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	_, reportData, err := readFormFile(c, "report")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := pipeline.BuildManifest(origName, bytes.NewReader(origData), bytes.NewReader(reportData),
		pipeline.ManifestOptionsFromConfig(s.cfg), logger.FromContext(c))
	if err != nil {
		s.fail(c, err)
		return
	}

	csvName := c.DefaultPostForm("output", defaultManifestName)
	if filepath.Ext(csvName) == "" {
		csvName += ".csv"
	}
	csvName = filepath.Base(csvName)

	resp := manifestResponse{
		CSV: artifactRef{
			Token:    s.downloads.put(csvName, contentTypeCSV, res.CSV, s.ttl),
			Filename: csvName,
		},
		Rows:        res.Rows,
		MultiOrders: res.MultiOrders,
	}
	if res.Workbook != nil {
		wbName := exporter.FormattedPath(csvName, s.cfg.Manifest.FormattedSuffix)
		resp.Workbook = &artifactRef{
			Token:    s.downloads.put(wbName, contentTypeXLSX, res.Workbook, s.ttl),
			Filename: wbName,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Download 按 token 下载生成结果，下载后 token 失效
// GET /api/download/:token
func (s *Server) Download(c *gin.Context) {
	item, ok := s.downloads.take(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download link expired"})
		return
	}
	c.Header("Content-Disposition", contentDisposition(item.filename))
	c.Data(http.StatusOK, item.contentType, item.data)
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	if pipeline.IsInputError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.FromContext(c).Error("pipeline failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func readFormFile(c *gin.Context, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, fmt.Errorf("missing upload field %q", field)
	}
	data, err := readMultipartFile(fh)
	if err != nil {
		return "", nil, fmt.Errorf("read upload %q: %w", field, err)
	}
	return fh.Filename, data, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// contentDisposition 同时给出 ASCII 回退名和 UTF-8 文件名（日文文件名）
func contentDisposition(filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, url.PathEscape(filename))
}
