package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blues/escrow/internal/bank"
	"github.com/blues/escrow/internal/ledger"
	"github.com/blues/escrow/internal/router"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ownerAddr    = common.BytesToAddress([]byte{0x01}).Hex()
	treasuryAddr = common.BytesToAddress([]byte{0x02}).Hex()
	creatorAddr  = common.BytesToAddress([]byte{0x10}).Hex()
	backerAddr   = common.BytesToAddress([]byte{0x20}).Hex()
)

func setupServer(t *testing.T) (*gin.Engine, *bank.MemoryBank) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mem := bank.NewMemoryBank()
	l, err := ledger.New(
		common.HexToAddress(ownerAddr),
		common.HexToAddress(treasuryAddr),
		500,
		mem,
		ledger.NopSink{},
	)
	require.NoError(t, err)

	return router.Setup(l, mem, nil), mem
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProject(t *testing.T, r *gin.Engine) uint64 {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{
		"creator":                creatorAddr,
		"name":                   "硬件众筹",
		"description":            "测试项目",
		"funding_goal":           100,
		"duration_days":          10,
		"milestone_descriptions": []string{"原型机", "量产"},
		"milestone_amounts":      []uint64{40, 60},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			ProjectID uint64 `json:"project_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data.ProjectID
}

func fundProject(t *testing.T, r *gin.Engine, id uint64, from string, amount uint64) {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/fund", id), gin.H{
		"contributor": from,
		"amount":      amount,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestCreateProjectAPI(t *testing.T) {
	r, _ := setupServer(t)

	id := createProject(t, r)
	assert.Equal(t, uint64(0), id)

	// 缺少必填字段
	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{"creator": creatorAddr})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 非法地址
	w = doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{
		"creator":                "not-an-address",
		"name":                   "x",
		"funding_goal":           100,
		"duration_days":          10,
		"milestone_descriptions": []string{"a"},
		"milestone_amounts":      []uint64{100},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 里程碑金额之和不等于目标金额
	w = doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{
		"creator":                creatorAddr,
		"name":                   "x",
		"funding_goal":           100,
		"duration_days":          10,
		"milestone_descriptions": []string{"a"},
		"milestone_amounts":      []uint64{99},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectLifecycleAPI(t *testing.T) {
	r, mem := setupServer(t)
	id := createProject(t, r)

	fundProject(t, r, id, backerAddr, 100)

	// 查询项目
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fully_funded":true`)

	// 出资人视图
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/backers/count", id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"backer_count":1`)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/projects/%d/backers/%s", id, backerAddr), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":100`)

	// 非创建者放款被拒
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/milestones/0/complete", id),
		gin.H{"caller": backerAddr})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 跳序放款被拒
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/milestones/1/complete", id),
		gin.H{"caller": creatorAddr})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 按序放款成功，5%费率下创建者到账38
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/milestones/0/complete", id),
		gin.H{"caller": creatorAddr})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, uint64(38), mem.CreditOf(common.HexToAddress(creatorAddr)))
	assert.Equal(t, uint64(2), mem.CreditOf(common.HexToAddress(treasuryAddr)))

	// 已有里程碑完成，取消被拒
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/cancel", id),
		gin.H{"caller": creatorAddr})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 不存在的项目
	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelAndRefundAPI(t *testing.T) {
	r, mem := setupServer(t)
	id := createProject(t, r)
	fundProject(t, r, id, backerAddr, 60)

	// 截止前未取消时退款被拒
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/refund", id),
		gin.H{"contributor": backerAddr})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 取消后立即可退款
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/cancel", id),
		gin.H{"caller": creatorAddr})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/refund", id),
		gin.H{"contributor": backerAddr})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, uint64(60), mem.CreditOf(common.HexToAddress(backerAddr)))

	// 重复退款被拒
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/projects/%d/refund", id),
		gin.H{"contributor": backerAddr})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPlatformAPI(t *testing.T) {
	r, _ := setupServer(t)
	newTreasury := common.BytesToAddress([]byte{0x03}).Hex()

	w := doJSON(t, r, http.MethodGet, "/api/v1/platform", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fee_bps":500`)

	// 非管理员被拒
	w = doJSON(t, r, http.MethodPut, "/api/v1/platform/treasury",
		gin.H{"caller": creatorAddr, "treasury": newTreasury})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 管理员更换金库
	w = doJSON(t, r, http.MethodPut, "/api/v1/platform/treasury",
		gin.H{"caller": ownerAddr, "treasury": newTreasury})
	require.Equal(t, http.StatusOK, w.Code)

	// 费率超上限被拒
	w = doJSON(t, r, http.MethodPut, "/api/v1/platform/fee",
		gin.H{"caller": ownerAddr, "fee_bps": 1001})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/platform/fee",
		gin.H{"caller": ownerAddr, "fee_bps": 300})
	require.Equal(t, http.StatusOK, w.Code)

	// 移交管理权后旧管理员失效
	newOwner := common.BytesToAddress([]byte{0x04}).Hex()
	w = doJSON(t, r, http.MethodPut, "/api/v1/platform/owner",
		gin.H{"caller": ownerAddr, "new_owner": newOwner})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/platform/fee",
		gin.H{"caller": ownerAddr, "fee_bps": 100})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealthAPI(t *testing.T) {
	r, _ := setupServer(t)
	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
