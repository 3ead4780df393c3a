package builtin

import (
	"net/http"

	"github.com/sypnex/flowrunner/pkg/executor"
	"github.com/sypnex/flowrunner/pkg/httpclient"
	"github.com/sypnex/flowrunner/pkg/proxyclient"
	"github.com/sypnex/flowrunner/pkg/vfsclient"
)

// Register wires every built-in node executor into reg. vfsURL/proxyURL and
// sessionToken back the "vfs_load", "vfs_save", "vfs_directory_list",
// "http", and "llm_chat" node types, which all need an authenticated
// transport client (spec §4.1, §4.2). clients is consulted by the "http"
// node when a workflow author sets client_name, letting that request
// bypass the proxy and go out through a specifically configured client.
func Register(reg *executor.Registry, httpClient *http.Client, clients *httpclient.Registry, vfsURL, proxyURL, sessionToken string, maxDirectoryDepth int) {
	vfs := vfsclient.New(vfsURL, sessionToken, httpClient)
	proxy := proxyclient.New(proxyURL, sessionToken, httpClient)

	reg.MustRegister(&HTTPExecutor{Proxy: proxy, Clients: clients})
	reg.MustRegister(&VFSLoadExecutor{VFS: vfs})
	reg.MustRegister(&VFSSaveExecutor{VFS: vfs})
	reg.MustRegister(&VFSDirectoryListExecutor{VFS: vfs, MaxDepth: maxDirectoryDepth})
	reg.MustRegister(&ForEachExecutor{})
	reg.MustRegister(&TimerExecutor{})
	reg.MustRegister(&DelayExecutor{})
	reg.MustRegister(&TextExecutor{})
	reg.MustRegister(&JSONExtractExecutor{})
	reg.MustRegister(&StringExecutor{})
	reg.MustRegister(&ArrayExecutor{})
	reg.MustRegister(&RandomExecutor{})
	reg.MustRegister(&NodeReferenceExecutor{})
	reg.MustRegister(&ConditionExecutor{})
	reg.MustRegister(&MathExecutor{})
	reg.MustRegister(&LogicalGateExecutor{})
	reg.MustRegister(&LLMChatExecutor{Proxy: proxy})
	reg.MustRegister(&RepeaterExecutor{})

	reg.SetUnknownExecutor(&UnknownExecutor{})
}
