package tool

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"time"
)

const defaultCertValidity = 10 * 365 * 24 * time.Hour

// CertSubject describes the self-signed certificate served by the api
type CertSubject struct {
	Organization string
	CommonName   string
	Hosts        []string
	Validity     time.Duration
}

// withDefaults fills the hosts with the local names and the validity with ten years
func (s CertSubject) withDefaults() CertSubject {
	if len(s.Hosts) == 0 {
		s.Hosts = []string{"localhost", "127.0.0.1"}
		if hostname, err := os.Hostname(); err == nil && hostname != "" {
			s.Hosts = append(s.Hosts, hostname)
		}
	}
	if s.Validity <= 0 {
		s.Validity = defaultCertValidity
	}
	return s
}

// EnsureSelfSignedCertificate generates the key and cert files unless both exist, and reports whether it did
func EnsureSelfSignedCertificate(keyFilename, certFilename string, subject CertSubject) (bool, error) {
	existCert, err := IsFileExists(certFilename)
	if err != nil {
		return false, err
	}
	existKey, err := IsFileExists(keyFilename)
	if err != nil {
		return false, err
	}
	if existCert && existKey {
		return false, nil
	}
	return true, GenerateSelfSignedCertificate(keyFilename, certFilename, subject, time.Now())
}

func GenerateSelfSignedCertificate(keyFilename, certFilename string, subject CertSubject, now time.Time) error {
	subject = subject.withDefaults()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	serialNumber, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return fmt.Errorf("generate serial number: %w", err)
	}

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			Organization: []string{subject.Organization},
			CommonName:   subject.CommonName,
		},
		NotBefore:             now.Add(-time.Hour),
		NotAfter:              now.Add(subject.Validity),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	for _, h := range subject.Hosts {
		if ip := net.ParseIP(h); ip != nil {
			template.IPAddresses = append(template.IPAddresses, ip)
		} else {
			template.DNSNames = append(template.DNSNames, h)
		}
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return fmt.Errorf("create certificate: %w", err)
	}
	rawKey, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}

	if err = writePem(keyFilename, "EC PRIVATE KEY", rawKey, 0600); err != nil {
		return err
	}
	return writePem(certFilename, "CERTIFICATE", der, 0644)
}

func writePem(filename string, blockType string, raw []byte, perm os.FileMode) error {
	data := pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: raw})
	if err := os.WriteFile(filename, data, perm); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}
